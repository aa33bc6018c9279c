package get_shop_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWash/internal/api/handlers"
	"github.com/m04kA/SMC-CarWash/internal/domain"
)

const (
	msgShopNotFound = "мойка не найдена"
)

type Handler struct {
	shops  ShopProvider
	policy domain.BookingPolicy
	logger Logger
}

func NewHandler(shops ShopProvider, policy domain.BookingPolicy, logger Logger) *Handler {
	return &Handler{
		shops:  shops,
		policy: policy,
		logger: logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/config
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID := mux.Vars(r)["shopId"]

	shop, err := h.shops.GetShop(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			h.logger.Warn("GET /shops/{id}/config - Shop not found: shop_id=%s", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)
			return
		}
		h.logger.Error("GET /shops/{id}/config - Failed to get shop: shop_id=%s, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shops/{id}/config - Config retrieved successfully: shop_id=%s, services=%d",
		shopID, len(shop.Services))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(shop, h.policy))
}
