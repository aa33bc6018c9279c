package get_shop_bookings

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

type AdminService interface {
	GetShopBookings(ctx context.Context, actor domain.Actor, filter domain.ShopBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
