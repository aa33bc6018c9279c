package confirm_pending

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWash/internal/api/handlers"
	"github.com/m04kA/SMC-CarWash/internal/api/middleware"
	"github.com/m04kA/SMC-CarWash/internal/domain"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/bookings/confirm-pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if !actor.IsAdminOf(shopID) {
		h.logger.Warn("POST /shops/{id}/bookings/confirm-pending - Access denied: shop_id=%s, user_id=%d",
			shopID, actor.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.ConfirmAllPending(r.Context(), actor)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("POST /shops/{id}/bookings/confirm-pending - Failed: shop_id=%s, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /shops/{id}/bookings/confirm-pending - shop_id=%s, confirmed=%d, failed=%d",
		shopID, result.Confirmed, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, fromResult(shopID, result))
}
