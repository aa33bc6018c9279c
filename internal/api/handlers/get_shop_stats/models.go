package get_shop_stats

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/service/admin"
)

var reportedStatuses = []domain.BookingStatus{
	domain.StatusPending,
	domain.StatusConfirmed,
	domain.StatusCompleted,
	domain.StatusCancelled,
	domain.StatusRejected,
}

// DayRevenueResponse выручка за день
type DayRevenueResponse struct {
	Date      string  `json:"date"` // "2025-10-15"
	Completed int     `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

// ShopStatsResponse HTTP response model
type ShopStatsResponse struct {
	ShopID       string               `json:"shopId"`
	From         *string              `json:"from,omitempty"`
	To           *string              `json:"to,omitempty"`
	Total        int                  `json:"total"`
	ByStatus     map[string]int       `json:"byStatus"`
	Revenue      float64              `json:"revenue"`
	RevenueByDay []DayRevenueResponse `json:"revenueByDay"`
}

// ParsePeriod читает период из query: date (один день) или from/to
func ParsePeriod(q url.Values) (from, to *time.Time, err error) {
	if raw := q.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date: %w", err)
		}
		return &date, &date, nil
	}

	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid from: %w", err)
		}
		from = &parsed
	}
	if raw := q.Get("to"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid to: %w", err)
		}
		to = &parsed
	}
	return from, to, nil
}

// FromShopStats конвертирует сводку в HTTP ответ
func FromShopStats(stats *admin.ShopStats, from, to *time.Time) ShopStatsResponse {
	resp := ShopStatsResponse{
		ShopID:       stats.ShopID,
		From:         formatDate(from),
		To:           formatDate(to),
		Total:        stats.Total,
		ByStatus:     make(map[string]int, len(reportedStatuses)),
		Revenue:      stats.Revenue,
		RevenueByDay: make([]DayRevenueResponse, 0, len(stats.RevenueByDay)),
	}

	for _, status := range reportedStatuses {
		resp.ByStatus[string(status)] = stats.ByStatus[status]
	}
	for _, day := range stats.RevenueByDay {
		resp.RevenueByDay = append(resp.RevenueByDay, DayRevenueResponse{
			Date:      day.Date.Format(domain.DateFormat),
			Completed: day.Completed,
			Revenue:   day.Revenue,
		})
	}

	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
