package get_shop_config

import (
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// ShopConfigResponse часы работы, каталог услуг и правила бронирования мойки
type ShopConfigResponse struct {
	ShopID     string            `json:"shopId"`
	Name       string            `json:"name"`
	OpenTime   string            `json:"openTime"`
	CloseTime  string            `json:"closeTime"`
	AutoAccept bool              `json:"autoAccept"`
	Services   []ServiceResponse `json:"services"`
	Policy     PolicyResponse    `json:"policy"`
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// PolicyResponse правила бронирования, общие для всех моек
type PolicyResponse struct {
	AdvanceBookingDays       int    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes  int    `json:"minBookingNoticeMinutes"`
	CancellationLeadMinutes  int    `json:"cancellationLeadMinutes"`
	AutoConfirmWindowMinutes int    `json:"autoConfirmWindowMinutes"`
	Timezone                 string `json:"timezone"`
}

// FromDomain формирует ответ из мойки и политики бронирования
func FromDomain(shop *domain.Shop, policy domain.BookingPolicy) *ShopConfigResponse {
	services := make([]ServiceResponse, len(shop.Services))
	for i, s := range shop.Services {
		services[i] = ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}
	}

	return &ShopConfigResponse{
		ShopID:     shop.ID,
		Name:       shop.Name,
		OpenTime:   shop.OpenTime.String(),
		CloseTime:  shop.CloseTime.String(),
		AutoAccept: shop.AutoAccept,
		Services:   services,
		Policy: PolicyResponse{
			AdvanceBookingDays:       policy.AdvanceBookingDays,
			MinBookingNoticeMinutes:  policy.MinBookingNoticeMinutes,
			CancellationLeadMinutes:  policy.CancellationLeadMinutes,
			AutoConfirmWindowMinutes: policy.AutoConfirmWindowMinutes,
			Timezone:                 policy.In(time.Time{}).Location().String(),
		},
	}
}
