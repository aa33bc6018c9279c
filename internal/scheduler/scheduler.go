package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/service/bookings/models"
)

type autoConfirmer interface {
	AutoConfirmSweep(ctx context.Context) (*models.SweepResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически запускает автоподтверждение бронирований
type Scheduler struct {
	bookingService autoConfirmer
	interval       time.Duration
	logger         Logger
}

func New(bookingService autoConfirmer, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		interval:       interval,
		logger:         logger,
	}
}

// Start блокируется до отмены ctx. При interval <= 0 сразу возвращается.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Scheduler: auto-confirm is disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler: started, interval=%s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	result, err := s.bookingService.AutoConfirmSweep(ctx)
	if err != nil {
		s.logger.Error("Scheduler: auto-confirm sweep failed: %v", err)
		return
	}

	for _, id := range result.IDs {
		s.logger.Info("Scheduler: booking id=%s auto-confirmed", id)
	}
	if result.Failed > 0 {
		s.logger.Warn("Scheduler: %d bookings could not be auto-confirmed", result.Failed)
	}
}
