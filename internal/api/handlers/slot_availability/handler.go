package slot_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWash/internal/api/handlers"
	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime     = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration = "длительность должна быть положительным числом минут"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/slot-availability
// Query params: date, time, durationMinutes (все обязательны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]
	params := r.URL.Query()

	q, msg := parseQuery(params.Get("date"), params.Get("time"), params.Get("durationMinutes"))
	if q == nil {
		h.logger.Warn("GET /shops/{id}/slot-availability - Invalid query: %s", r.URL.RawQuery)
		handlers.RespondBadRequest(w, msg)
		return
	}

	available, err := h.service.IsSlotAvailable(r.Context(), shopID, q.date, q.start, q.duration)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrInvalidFormat):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, domain.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /shops/{id}/slot-availability - Failed to check slot: shop_id=%s, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/slot-availability - shop_id=%s, date=%s, time=%s, available=%t",
		shopID, q.date.Format(domain.DateFormat), q.start, available)
	handlers.RespondJSON(w, http.StatusOK, &SlotAvailabilityResponse{
		ShopID:          shopID,
		Date:            q.date.Format(domain.DateFormat),
		StartTime:       q.start.String(),
		DurationMinutes: q.duration,
		Available:       available,
	})
}
