package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// ShopProvider источник данных о мойках
type ShopProvider interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
}

// AvailabilityService сервис вычисления свободных слотов
type AvailabilityService interface {
	ListForShop(ctx context.Context, shop *domain.Shop, date time.Time, duration int) ([]domain.AvailableSlot, error)
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
