package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockShopDay(ctx context.Context, shopID string, date time.Time) error
}

// AvailabilityService проверка свободного времени
type AvailabilityService interface {
	IsSlotAvailable(ctx context.Context, shopID string, date time.Time, start types.TimeString, duration int) (bool, error)
}

// ShopProvider источник данных о мойках
type ShopProvider interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
}

// VehicleProvider возвращает снимок автомобиля, при недоступности источника отдаёт fallback
type VehicleProvider interface {
	GetVehicle(ctx context.Context, userID int64, fallback domain.VehicleSnapshot) domain.VehicleSnapshot
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	BookingCreated(status string)
	SlotConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
