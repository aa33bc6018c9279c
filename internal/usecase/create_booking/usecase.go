package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWash/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarWash/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityService
	shops        ShopProvider
	vehicles     VehicleProvider
	txManager    TransactionManager
	policy       domain.BookingPolicy
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityService,
	shops ShopProvider,
	vehicles VehicleProvider,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availability,
		shops:        shops,
		vehicles:     vehicles,
		txManager:    txManager,
		policy:       policy,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка слота и запись выполняются в одной сериализуемой транзакции под блокировкой (мойка, дата).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, shop=%s, service=%s, date=%s, time=%s",
		req.UserID, req.ShopID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	date := domain.CalendarDay(req.Date)

	// 3. Валидация даты
	if err := uc.policy.CheckDate(date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Минимальное время до начала для бронирования на сегодня
	if err := validateBookingTime(uc.policy, date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем мойку
	shop, err := uc.shops.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			uc.logger.Warn("CreateBooking: shop=%s not found", req.ShopID)
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to get shop=%s: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", domain.ErrInternal, err)
	}

	// 6. Получаем услугу из каталога
	service, ok := shop.FindService(req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateBooking: service=%s not found in shop=%s", req.ServiceID, req.ShopID)
		return nil, fmt.Errorf("%w: id=%s", domain.ErrServiceNotFound, req.ServiceID)
	}

	// 7. Время в часах работы мойки
	if err := validateWorkingHours(shop, req.StartTime, service.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 8. Снимок автомобиля
	vehicle := uc.vehicles.GetVehicle(ctx, req.UserID, req.Vehicle)

	booking := &domain.Booking{
		ID:               uuid.NewString(),
		UserID:           req.UserID,
		ShopID:           shop.ID,
		Date:             date,
		Time:             req.StartTime,
		Service:          service.Snapshot(),
		AddOns:           req.AddOns,
		Vehicle:          vehicle,
		TotalPrice:       totalPrice(service, req.AddOns),
		Notes:            req.Notes,
		Status:           domain.StatusPending,
		ImmediatePayment: uc.policy.IsToday(date, now),
		UpdatedBy:        &req.UserID,
	}
	if shop.AutoAccept {
		booking.Status = domain.StatusConfirmed
		booking.AutoAccepted = true
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 9. Повторная проверка слота и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Блокируем (мойка, дата) до конца транзакции
		if err := uc.bookingRepo.LockShopDay(txCtx, shop.ID, date); err != nil {
			if isConflict(err) {
				return domain.ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to lock shop=%s date=%s: %v", shop.ID, date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to lock shop day: %v", domain.ErrInternal, err)
		}

		// 9.2. Проверяем слот по актуальным данным
		available, err := uc.availability.IsSlotAvailable(txCtx, shop.ID, date, req.StartTime, service.DurationMinutes)
		if err != nil {
			if isConflict(err) {
				return domain.ErrSlotUnavailable
			}
			return err
		}
		if !available {
			return domain.ErrSlotUnavailable
		}

		// 9.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if isConflict(err) {
				return domain.ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", domain.ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) || isConflict(err) {
			uc.logger.Warn("CreateBooking: slot %s %s at shop=%s is taken",
				date.Format(domain.DateFormat), req.StartTime, shop.ID)
			uc.metrics.SlotConflict()
			return nil, domain.ErrSlotUnavailable
		}
		return nil, err
	}

	uc.metrics.BookingCreated(string(result.Status))
	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s", result.ID, result.Status)

	return &Response{Booking: result}, nil
}

// isConflict конфликт конкурентных транзакций за один и тот же день мойки
func isConflict(err error) bool {
	return errors.Is(err, bookingRepo.ErrSerialization) || txmanager.IsSerializationFailure(err)
}
