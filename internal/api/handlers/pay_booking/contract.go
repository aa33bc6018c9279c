package pay_booking

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

type BookingService interface {
	Pay(ctx context.Context, actor domain.Actor, id, method string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
