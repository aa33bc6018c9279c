package get_shop_stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/service/admin"
)

type AdminService interface {
	GetShopStats(ctx context.Context, actor domain.Actor, shopID string, from, to *time.Time) (*admin.ShopStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
