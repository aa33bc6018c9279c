package availability

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// ShopProvider источник данных о мойках
type ShopProvider interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
