package cancel_booking

import (
	"net/http"

	"github.com/m04kA/SMC-CarWash/internal/api/handlers"
	"github.com/m04kA/SMC-CarWash/pkg/ptr"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// Reason причина отмены или пустая строка
func (r *CancelBookingRequest) Reason() string {
	return ptr.Value(r.CancellationReason)
}

// decodeRequest тело запроса необязательно
func decodeRequest(r *http.Request) (*CancelBookingRequest, error) {
	var req CancelBookingRequest
	if r.ContentLength == 0 {
		return &req, nil
	}
	if err := handlers.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
