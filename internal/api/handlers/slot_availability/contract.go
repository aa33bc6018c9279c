package slot_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWash/pkg/types"
)

type AvailabilityService interface {
	IsSlotAvailable(ctx context.Context, shopID string, date time.Time, start types.TimeString, duration int) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
