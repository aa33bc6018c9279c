package admin

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// ShopProvider источник данных о мойках
type ShopProvider interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
}

// Lifecycle переходы статусов, выполняемые администратором
type Lifecycle interface {
	Confirm(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error)
	Complete(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error)
	AdminCancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error)
	Reject(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
