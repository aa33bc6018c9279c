package bookings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWash/internal/infra/storage/booking"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	policy       domain.BookingPolicy
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		policy:       policy,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID.
// Доступно владельцу бронирования и администратору мойки.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError("GetByID", id, err)
	}

	if !booking.IsOwnedBy(actor.UserID) && !actor.IsAdminOf(booking.ShopID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", actor.UserID, id)
		return nil, domain.ErrUnauthorized
	}

	return booking, nil
}

// GetUserBookings получает историю бронирований клиента, опционально по статусу.
// С filter.Upcoming возвращает только предстоящие (с сегодняшнего дня, ожидающие и подтверждённые)
// в порядке начала.
func (s *Service) GetUserBookings(ctx context.Context, actor domain.Actor, userID int64, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d by user=%d, status=%v, upcoming=%t",
		userID, actor.UserID, filter.Status, filter.Upcoming)

	if actor.UserID != userID {
		s.logger.Warn("GetUserBookings: user=%d cannot read bookings of user=%d", actor.UserID, userID)
		return nil, domain.ErrUnauthorized
	}

	var bookings []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetByUserID(ctx, userID, filter.Status)
		return err
	})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", domain.ErrInternal, err)
	}

	if filter.Upcoming {
		bookings = upcoming(bookings, s.policy.Today(s.timeProvider.Now()))
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), userID)
	return bookings, nil
}

// Cancel отменяет бронирование по запросу клиента.
// Проверки по порядку: владелец, оплата, статус, время до начала.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%d", id, actor.UserID)

	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", domain.ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.mutate(ctx, "Cancel", id, func(b *domain.Booking, now time.Time) error {
		if !b.IsOwnedBy(actor.UserID) {
			return domain.ErrUnauthorized
		}

		// Оплаченное бронирование не возвращается
		if b.IsPaid {
			return domain.ErrAlreadyPaid
		}

		if !b.CanBeCancelled() {
			return fmt.Errorf("%w: cancel from %s", domain.ErrInvalidTransition, b.Status)
		}

		startsAt, err := s.policy.StartOf(b)
		if err != nil {
			return fmt.Errorf("%w: invalid booking time: %v", domain.ErrInternal, err)
		}
		lead := time.Duration(s.policy.CancellationLeadMinutes) * time.Minute
		if startsAt.Sub(now) < lead {
			return fmt.Errorf("%w: must cancel at least %d minutes before start",
				domain.ErrTooLateToCancel, s.policy.CancellationLeadMinutes)
		}

		return b.Cancel(now, actor.UserID, domain.CancelledByCustomer, reason)
	})
}

// Pay фиксирует оплату клиентом.
// Если время начала уже наступило, бронирование завершается.
func (s *Service) Pay(ctx context.Context, actor domain.Actor, id, method string) (*domain.Booking, error) {
	s.logger.Info("Pay: paying booking id=%s by user=%d, method=%s", id, actor.UserID, method)

	if strings.TrimSpace(method) == "" {
		return nil, fmt.Errorf("%w: payment method is required", domain.ErrInvalidInput)
	}

	return s.mutate(ctx, "Pay", id, func(b *domain.Booking, now time.Time) error {
		if !b.IsOwnedBy(actor.UserID) {
			return domain.ErrUnauthorized
		}
		return b.MarkPaid(s.policy.In(now), actor.UserID, method)
	})
}

// SubmitFeedback сохраняет отзыв клиента, повторная отправка перезаписывает предыдущий
func (s *Service) SubmitFeedback(ctx context.Context, actor domain.Actor, id string, rating int, comment string) (*domain.Booking, error) {
	s.logger.Info("SubmitFeedback: booking id=%s by user=%d, rating=%d", id, actor.UserID, rating)

	if len(comment) > domain.MaxFeedbackCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", domain.ErrInvalidInput, domain.MaxFeedbackCommentLength)
	}

	return s.mutate(ctx, "SubmitFeedback", id, func(b *domain.Booking, now time.Time) error {
		if !b.IsOwnedBy(actor.UserID) {
			return domain.ErrUnauthorized
		}
		return b.SetFeedback(now, rating, comment)
	})
}

// Confirm подтверждает ожидающее бронирование (администратор мойки)
func (s *Service) Confirm(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	return s.mutate(ctx, "Confirm", id, func(b *domain.Booking, now time.Time) error {
		if !actor.IsAdminOf(b.ShopID) {
			return domain.ErrUnauthorized
		}
		return b.Confirm(now, &actor.UserID)
	})
}

// Complete завершает подтверждённое бронирование (администратор мойки)
func (s *Service) Complete(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	return s.mutate(ctx, "Complete", id, func(b *domain.Booking, now time.Time) error {
		if !actor.IsAdminOf(b.ShopID) {
			return domain.ErrUnauthorized
		}
		return b.Complete(now, &actor.UserID)
	})
}

// AdminCancel отменяет бронирование без ограничения по времени (администратор мойки)
func (s *Service) AdminCancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error) {
	return s.mutate(ctx, "AdminCancel", id, func(b *domain.Booking, now time.Time) error {
		if !actor.IsAdminOf(b.ShopID) {
			return domain.ErrUnauthorized
		}
		return b.Cancel(now, actor.UserID, domain.CancelledByAdmin, reason)
	})
}

// Reject отклоняет бронирование (администратор мойки)
func (s *Service) Reject(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error) {
	return s.mutate(ctx, "Reject", id, func(b *domain.Booking, now time.Time) error {
		if !actor.IsAdminOf(b.ShopID) {
			return domain.ErrUnauthorized
		}
		return b.Reject(now, actor.UserID, reason)
	})
}

// mutate перечитывает бронирование с блокировкой, применяет переход и сохраняет одним Update.
// При ошибке перехода ничего не записывается.
func (s *Service) mutate(
	ctx context.Context,
	op, id string,
	apply func(b *domain.Booking, now time.Time) error,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return s.repoError(op, id, err)
		}

		before := booking.Status
		if err := apply(booking, s.timeProvider.Now()); err != nil {
			s.logger.Warn("%s: booking id=%s rejected: %v", op, id, err)
			return err
		}

		if err := s.bookingRepo.Update(txCtx, booking); err != nil {
			return s.repoError(op, id, err)
		}

		if booking.Status != before {
			s.metrics.BookingTransition(string(booking.Status))
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: booking id=%s is %s", op, id, result.Status)
	return result, nil
}

// repoError переводит ошибки репозитория в доменные
func (s *Service) repoError(op, id string, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%s not found", op, id)
		return domain.ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", domain.ErrInternal, op, err)
}

// upcoming оставляет активные бронирования начиная с today, ближайшие первыми
func upcoming(bookings []*domain.Booking, today time.Time) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Date.Before(today) {
			continue
		}
		if b.Status != domain.StatusPending && b.Status != domain.StatusConfirmed {
			continue
		}
		result = append(result, b)
	}

	slices.SortFunc(result, func(a, b *domain.Booking) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(string(a.Time), string(b.Time))
	})
	return result
}
