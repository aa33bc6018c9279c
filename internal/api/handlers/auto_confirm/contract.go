package auto_confirm

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/service/bookings/models"
)

type BookingService interface {
	AutoConfirmSweep(ctx context.Context) (*models.SweepResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
