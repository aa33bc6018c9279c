package get_shop_config

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

type ShopProvider interface {
	GetShop(ctx context.Context, shopID string) (*domain.Shop, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
