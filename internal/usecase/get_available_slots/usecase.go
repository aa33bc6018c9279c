package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	shops        ShopProvider
	availability AvailabilityService
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shops ShopProvider,
	availability AvailabilityService,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		shops:        shops,
		availability: availability,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%s, service=%s, date=%s",
		req.ShopID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.CalendarDay(req.Date)

	// 3. Дата не в прошлом и не дальше горизонта бронирования
	if err := uc.policy.CheckDate(date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем мойку
	shop, err := uc.shops.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop=%s not found", req.ShopID)
			return nil, err
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", domain.ErrInternal, err)
	}

	// 5. Находим услугу в каталоге мойки
	service, ok := shop.FindService(req.ServiceID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: service=%s not found in shop=%s", req.ServiceID, req.ShopID)
		return nil, fmt.Errorf("%w: id=%s", domain.ErrServiceNotFound, req.ServiceID)
	}

	// 6. Свободные слоты без учета текущего времени
	slots, err := uc.availability.ListForShop(ctx, shop, date, service.DurationMinutes)
	if err != nil {
		return nil, err
	}

	// 7. Для сегодняшнего дня убираем слоты раньше минимального времени до бронирования
	slots = dropBeforeNotice(slots, uc.policy.EarliestStartMinutes(date, now))

	resp := &Response{
		Date:             date,
		ShopID:           shop.ID,
		ServiceID:        service.ID,
		DurationMinutes:  service.DurationMinutes,
		ImmediatePayment: uc.policy.IsToday(date, now),
		Slots:            make([]Slot, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, Slot{StartTime: slot.StartTime, EndTime: slot.EndTime})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for shop=%s, service=%s, date=%s",
		len(resp.Slots), req.ShopID, req.ServiceID, date.Format(domain.DateFormat))

	return resp, nil
}
