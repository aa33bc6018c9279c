package admin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWash/internal/infra/storage/booking"
)

// ConfirmAllResult итог массового подтверждения
type ConfirmAllResult struct {
	Confirmed int
	Failed    int
}

// DayRevenue выручка мойки за один день
type DayRevenue struct {
	Date      time.Time
	Completed int
	Revenue   float64
}

// ShopStats сводка по бронированиям мойки за период
type ShopStats struct {
	ShopID       string
	Total        int
	ByStatus     map[domain.BookingStatus]int
	Revenue      float64      // Сумма TotalPrice завершённых бронирований
	RevenueByDay []DayRevenue // По возрастанию даты, только дни с завершёнными
}

// Service операции администратора мойки над бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	lifecycle   Lifecycle
	shops       ShopProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса администратора
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	lifecycle Lifecycle,
	shops ShopProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		lifecycle:   lifecycle,
		shops:       shops,
		logger:      logger,
	}
}

// UpdateBookingStatus переводит бронирование своей мойки в указанный статус
func (s *Service) UpdateBookingStatus(
	ctx context.Context,
	actor domain.Actor,
	bookingID string,
	status domain.BookingStatus,
	reason string,
) (*domain.Booking, error) {
	s.logger.Info("UpdateBookingStatus: booking id=%s to %s by admin=%d of shop=%s",
		bookingID, status, actor.UserID, actor.ShopID)

	// 1. Только администратор
	if actor.Role != domain.RoleAdmin || actor.ShopID == "" {
		s.logger.Warn("UpdateBookingStatus: user=%d is not an admin", actor.UserID)
		return nil, domain.ErrUnauthorized
	}

	// 2. Бронирование принадлежит мойке администратора
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateBookingStatus: booking id=%s not found", bookingID)
			return nil, domain.ErrBookingNotFound
		}
		s.logger.Error("UpdateBookingStatus: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateBookingStatus - repository error: %v", domain.ErrInternal, err)
	}
	if err := s.authorize(ctx, actor, booking.ShopID); err != nil {
		s.logger.Warn("UpdateBookingStatus: admin=%d of shop=%s cannot manage booking of shop=%s",
			actor.UserID, actor.ShopID, booking.ShopID)
		return nil, err
	}

	// 3. Делегируем переходу жизненного цикла
	switch status {
	case domain.StatusConfirmed:
		return s.lifecycle.Confirm(ctx, actor, bookingID)
	case domain.StatusCompleted:
		return s.lifecycle.Complete(ctx, actor, bookingID)
	case domain.StatusCancelled:
		return s.lifecycle.AdminCancel(ctx, actor, bookingID, reason)
	case domain.StatusRejected:
		return s.lifecycle.Reject(ctx, actor, bookingID, reason)
	default:
		s.logger.Warn("UpdateBookingStatus: unsupported target status=%s", status)
		return nil, fmt.Errorf("%w: cannot set status %s", domain.ErrInvalidTransition, status)
	}
}

// GetShopBookings бронирования своей мойки с фильтрацией по периоду и статусу
func (s *Service) GetShopBookings(ctx context.Context, actor domain.Actor, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	s.logger.Info("GetShopBookings: shop=%s by user=%d", filter.ShopID, actor.UserID)

	if err := s.authorize(ctx, actor, filter.ShopID); err != nil {
		s.logger.Warn("GetShopBookings: user=%d is not an admin of shop=%s", actor.UserID, filter.ShopID)
		return nil, err
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: from is after to", domain.ErrInvalidInput)
	}

	bookings, err := s.readBookings(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopBookings: repository error for shop=%s: %v", filter.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopBookings - repository error: %v", domain.ErrInternal, err)
	}

	s.logger.Info("GetShopBookings: successfully fetched %d bookings for shop=%s", len(bookings), filter.ShopID)
	return bookings, nil
}

// GetShopStats считает бронирования мойки по статусам и выручку завершённых за период.
// Границы периода необязательны и включаются.
func (s *Service) GetShopStats(ctx context.Context, actor domain.Actor, shopID string, from, to *time.Time) (*ShopStats, error) {
	s.logger.Info("GetShopStats: shop=%s by user=%d", shopID, actor.UserID)

	if err := s.authorize(ctx, actor, shopID); err != nil {
		s.logger.Warn("GetShopStats: user=%d is not an admin of shop=%s", actor.UserID, shopID)
		return nil, err
	}

	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: from is after to", domain.ErrInvalidInput)
	}

	bookings, err := s.readBookings(ctx, domain.ShopBookingsFilter{
		ShopID:          shopID,
		From:            from,
		To:              to,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("GetShopStats: repository error for shop=%s: %v", shopID, err)
		return nil, fmt.Errorf("%w: GetShopStats - repository error: %v", domain.ErrInternal, err)
	}

	stats := &ShopStats{
		ShopID:       shopID,
		Total:        len(bookings),
		ByStatus:     make(map[domain.BookingStatus]int),
		RevenueByDay: make([]DayRevenue, 0),
	}
	days := make(map[time.Time]*DayRevenue)
	for _, b := range bookings {
		stats.ByStatus[b.Status]++
		if b.Status != domain.StatusCompleted {
			continue
		}

		stats.Revenue += b.TotalPrice
		day, ok := days[b.Date]
		if !ok {
			day = &DayRevenue{Date: b.Date}
			days[b.Date] = day
		}
		day.Completed++
		day.Revenue += b.TotalPrice
	}

	for _, day := range days {
		stats.RevenueByDay = append(stats.RevenueByDay, *day)
	}
	slices.SortFunc(stats.RevenueByDay, func(a, b DayRevenue) int {
		return a.Date.Compare(b.Date)
	})

	s.logger.Info("GetShopStats: shop=%s, %d bookings, revenue=%.2f", shopID, stats.Total, stats.Revenue)
	return stats, nil
}

func (s *Service) readBookings(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetByShopWithFilter(ctx, filter)
		return err
	})
	return bookings, err
}

// ConfirmAllPending подтверждает все ожидающие бронирования мойки администратора.
// Ошибка по одному бронированию не прерывает остальные.
func (s *Service) ConfirmAllPending(ctx context.Context, actor domain.Actor) (*ConfirmAllResult, error) {
	pending := domain.StatusPending
	bookings, err := s.GetShopBookings(ctx, actor, domain.ShopBookingsFilter{
		ShopID: actor.ShopID,
		Status: &pending,
	})
	if err != nil {
		return nil, err
	}

	result := &ConfirmAllResult{}
	for _, b := range bookings {
		if _, err := s.lifecycle.Confirm(ctx, actor, b.ID); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				continue
			}
			s.logger.Error("ConfirmAllPending: failed to confirm booking id=%s: %v", b.ID, err)
			result.Failed++
			continue
		}
		result.Confirmed++
	}

	s.logger.Info("ConfirmAllPending: shop=%s, %d confirmed, %d failed", actor.ShopID, result.Confirmed, result.Failed)
	return result, nil
}

// authorize проверяет, что актор администратор мойки.
// Если каталог мойки содержит список администраторов, актор должен в нём быть.
func (s *Service) authorize(ctx context.Context, actor domain.Actor, shopID string) error {
	if !actor.IsAdminOf(shopID) {
		return domain.ErrUnauthorized
	}

	shop, err := s.shops.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return domain.ErrUnauthorized
		}
		s.logger.Error("authorize: failed to get shop=%s: %v", shopID, err)
		return fmt.Errorf("%w: failed to get shop: %v", domain.ErrInternal, err)
	}

	if len(shop.AdminIDs) > 0 && !shop.HasAdmin(actor.UserID) {
		return domain.ErrUnauthorized
	}
	return nil
}
