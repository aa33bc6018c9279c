package submit_feedback

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

type BookingService interface {
	SubmitFeedback(ctx context.Context, actor domain.Actor, id string, rating int, comment string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
