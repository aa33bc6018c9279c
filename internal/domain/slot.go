package domain

import "github.com/m04kA/SMC-CarWash/pkg/types"

// AvailableSlot represents a time slot free for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
