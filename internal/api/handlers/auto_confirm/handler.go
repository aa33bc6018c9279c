package auto_confirm

import (
	"net/http"

	"github.com/m04kA/SMC-CarWash/internal/api/handlers"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/internal/auto-confirm
// Вызывается внешним планировщиком, повторный вызов безопасен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.AutoConfirmSweep(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/auto-confirm - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if result.Failed > 0 {
		h.logger.Warn("POST /internal/auto-confirm - %d bookings could not be confirmed", result.Failed)
	}
	h.logger.Info("POST /internal/auto-confirm - confirmed=%d", result.Confirmed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
