package get_shop_stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWash/internal/api/middleware"
	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/service/admin"
	"github.com/m04kA/SMC-CarWash/pkg/logger"
)

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) GetShopStats(ctx context.Context, actor domain.Actor, shopID string, from, to *time.Time) (*admin.ShopStats, error) {
	args := m.Called(ctx, actor, shopID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.ShopStats), args.Error(1)
}

func serve(svc *MockAdminService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/shops/{shopId}/bookings/stats", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.HeaderUserID, "1001")
	req.Header.Set(middleware.HeaderRole, "admin")
	req.Header.Set(middleware.HeaderShopID, "shop-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	svc := new(MockAdminService)
	svc.On("GetShopStats", mock.Anything, mock.Anything, "shop-1", &day, &day).Return(&admin.ShopStats{
		ShopID:       "shop-1",
		Total:        3,
		ByStatus:     map[domain.BookingStatus]int{domain.StatusCompleted: 2, domain.StatusPending: 1},
		Revenue:      65,
		RevenueByDay: []admin.DayRevenue{{Date: day, Completed: 2, Revenue: 65}},
	}, nil)

	rec := serve(svc, "/shops/shop-1/bookings/stats?date=2026-10-20")

	require.Equal(t, http.StatusOK, rec.Code)
	var body ShopStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.ByStatus["completed"])
	assert.Equal(t, 0, body.ByStatus["rejected"])
	assert.Len(t, body.ByStatus, 5)
	assert.InDelta(t, 65.0, body.Revenue, 0.001)
	require.Len(t, body.RevenueByDay, 1)
	assert.Equal(t, "2026-10-20", body.RevenueByDay[0].Date)
	require.NotNil(t, body.From)
	assert.Equal(t, "2026-10-20", *body.From)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"bad date", "/shops/shop-1/bookings/stats?from=20-10-2026", nil, http.StatusBadRequest},
		{"foreign shop", "/shops/shop-2/bookings/stats", domain.ErrUnauthorized, http.StatusForbidden},
		{"reversed period", "/shops/shop-1/bookings/stats?from=2026-10-21&to=2026-10-20", domain.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/shops/shop-1/bookings/stats", domain.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAdminService)
			svc.On("GetShopStats", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(svc, tt.target)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
