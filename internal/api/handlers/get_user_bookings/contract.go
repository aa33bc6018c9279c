package get_user_bookings

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

type BookingService interface {
	GetUserBookings(ctx context.Context, actor domain.Actor, userID int64, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
