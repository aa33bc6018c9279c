package confirm_pending

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/service/admin"
)

type AdminService interface {
	ConfirmAllPending(ctx context.Context, actor domain.Actor) (*admin.ConfirmAllResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
