package update_booking_status

import "github.com/m04kA/SMC-CarWash/pkg/ptr"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"` // confirmed, completed, cancelled, rejected
	Reason *string `json:"reason,omitempty"`
}

func (r *UpdateStatusRequest) reason() string {
	return ptr.Value(r.Reason)
}
