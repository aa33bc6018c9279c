package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

type AdminService interface {
	UpdateBookingStatus(ctx context.Context, actor domain.Actor, bookingID string, status domain.BookingStatus, reason string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
