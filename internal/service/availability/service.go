package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/schedule"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// Service вычисляет свободные слоты мойки на дату
type Service struct {
	shops       ShopProvider
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(shops ShopProvider, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		shops:       shops,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ListAvailableSlots возвращает свободные слоты длительностью duration в часы работы мойки
func (s *Service) ListAvailableSlots(ctx context.Context, shopID string, date time.Time, duration int) ([]domain.AvailableSlot, error) {
	shop, err := s.shops.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			s.logger.Warn("ListAvailableSlots: shop=%s not found", shopID)
			return nil, err
		}
		s.logger.Error("ListAvailableSlots: failed to get shop=%s: %v", shopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", domain.ErrInternal, err)
	}

	return s.ListForShop(ctx, shop, date, duration)
}

// ListForShop то же, что ListAvailableSlots, для уже загруженной мойки
func (s *Service) ListForShop(ctx context.Context, shop *domain.Shop, date time.Time, duration int) ([]domain.AvailableSlot, error) {
	candidates, err := schedule.GenerateSlots(duration, shop.OpenTime, shop.CloseTime)
	if err != nil {
		s.logger.Error("ListAvailableSlots: invalid working hours for shop=%s: %v", shop.ID, err)
		return nil, fmt.Errorf("%w: invalid working hours: %v", domain.ErrInternal, err)
	}

	windows, err := s.blockingWindows(ctx, shop.ID, date)
	if err != nil {
		return nil, err
	}

	free, err := schedule.Free(candidates, duration, windows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	slots := make([]domain.AvailableSlot, 0, len(free))
	for _, start := range free {
		end, err := start.AddMinutes(duration)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInternal, err)
		}
		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
		})
	}

	s.logger.Info("ListAvailableSlots: shop=%s date=%s duration=%d: %d of %d slots free",
		shop.ID, date.Format(domain.DateFormat), duration, len(slots), len(candidates))
	return slots, nil
}

// IsSlotAvailable проверяет, что [start, start+duration) не пересекается с занимающими бронированиями.
// Внутри транзакции чтение выполняется с блокировкой строк.
func (s *Service) IsSlotAvailable(ctx context.Context, shopID string, date time.Time, start types.TimeString, duration int) (bool, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return false, err
	}
	if duration <= 0 {
		return false, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}

	windows, err := s.blockingWindows(ctx, shopID, date)
	if err != nil {
		return false, err
	}

	return !schedule.Overlaps(windows, startMinutes, duration), nil
}

// blockingWindows окна всех занимающих бронирований мойки на дату
func (s *Service) blockingWindows(ctx context.Context, shopID string, date time.Time) ([]schedule.Window, error) {
	day := domain.CalendarDay(date)
	bookings, err := s.bookingRepo.GetByShopWithFilter(ctx, domain.ShopBookingsFilter{
		ShopID: shopID,
		From:   &day,
		To:     &day,
	})
	if err != nil {
		s.logger.Error("blockingWindows: failed to get bookings for shop=%s date=%s: %v",
			shopID, day.Format(domain.DateFormat), err)
		// Причина сохраняется: конфликт сериализации обрабатывает вызывающий
		return nil, fmt.Errorf("%w: failed to get bookings: %w", domain.ErrInternal, err)
	}

	windows := make([]schedule.Window, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsBlocking() {
			continue
		}
		w, err := schedule.NewWindow(b.Time, b.Service.DurationMinutes)
		if err != nil {
			// Запись с некорректным временем не должна скрывать остальные
			s.logger.Warn("blockingWindows: skip booking id=%s with invalid time %q", b.ID, b.Time)
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}
