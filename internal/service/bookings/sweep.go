package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/service/bookings/models"
)

// AutoConfirmSweep подтверждает ожидающие бронирования на сегодня,
// до начала которых осталось не больше окна автоподтверждения.
// Ошибка по одному бронированию не останавливает обработку остальных.
func (s *Service) AutoConfirmSweep(ctx context.Context) (*models.SweepResult, error) {
	now := s.timeProvider.Now()
	today := s.policy.Today(now)
	window := time.Duration(s.policy.AutoConfirmWindowMinutes) * time.Minute

	pending, err := s.bookingRepo.GetPendingByDate(ctx, today)
	if err != nil {
		s.logger.Error("AutoConfirmSweep: failed to get pending bookings for %s: %v", today.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: AutoConfirmSweep - repository error: %v", domain.ErrInternal, err)
	}

	result := &models.SweepResult{IDs: make([]string, 0)}

	for _, b := range pending {
		startsAt, err := s.policy.StartOf(b)
		if err != nil {
			s.logger.Error("AutoConfirmSweep: skip booking id=%s with invalid time %q: %v", b.ID, b.Time, err)
			result.Failed++
			continue
		}

		if startsAt.Sub(now) > window {
			continue
		}

		confirmed, err := s.autoConfirm(ctx, b.ID)
		if err != nil {
			s.logger.Error("AutoConfirmSweep: failed to confirm booking id=%s: %v", b.ID, err)
			result.Failed++
			continue
		}
		if confirmed {
			result.Confirmed++
			result.IDs = append(result.IDs, b.ID)
		}
	}

	s.metrics.AutoConfirmed(result.Confirmed, result.Failed)
	s.logger.Info("AutoConfirmSweep: %s: %d pending, %d confirmed, %d failed",
		today.Format(domain.DateFormat), len(pending), result.Confirmed, result.Failed)

	return result, nil
}

// autoConfirm подтверждает одно бронирование.
// Бронирование, уже вышедшее из pending, пропускается без ошибки.
func (s *Service) autoConfirm(ctx context.Context, id string) (bool, error) {
	_, err := s.mutate(ctx, "AutoConfirm", id, func(b *domain.Booking, now time.Time) error {
		return b.AutoConfirm(now)
	})
	if errors.Is(err, domain.ErrInvalidTransition) {
		return false, nil
	}
	return err == nil, err
}
