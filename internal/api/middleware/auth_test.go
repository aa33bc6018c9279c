package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantActor  domain.Actor
	}{
		{
			name:       "customer by default",
			headers:    map[string]string{HeaderUserID: "7"},
			wantStatus: http.StatusOK,
			wantActor:  domain.Actor{UserID: 7, Role: domain.RoleCustomer},
		},
		{
			name:       "admin with shop",
			headers:    map[string]string{HeaderUserID: "1001", HeaderRole: "admin", HeaderShopID: "shop-1"},
			wantStatus: http.StatusOK,
			wantActor:  domain.Actor{UserID: 1001, Role: domain.RoleAdmin, ShopID: "shop-1"},
		},
		{
			name:       "shop header ignored for customer",
			headers:    map[string]string{HeaderUserID: "7", HeaderShopID: "shop-1"},
			wantStatus: http.StatusOK,
			wantActor:  domain.Actor{UserID: 7, Role: domain.RoleCustomer},
		},
		{name: "missing user", headers: map[string]string{}, wantStatus: http.StatusUnauthorized},
		{name: "bad user", headers: map[string]string{HeaderUserID: "abc"}, wantStatus: http.StatusUnauthorized},
		{name: "unknown role", headers: map[string]string{HeaderUserID: "7", HeaderRole: "root"}, wantStatus: http.StatusUnauthorized},
		{name: "admin without shop", headers: map[string]string{HeaderUserID: "7", HeaderRole: "admin"}, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Actor
			h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = GetActor(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantActor, got)
			}
		})
	}
}

type MockHTTPMetrics struct {
	mock.Mock
}

func (m *MockHTTPMetrics) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	m.Called(method, path, status, d)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := new(MockHTTPMetrics)
	m.On("ObserveHTTPRequest", http.MethodGet, "/bookings/{bookingId}", http.StatusTeapot, mock.Anything).Return()

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	m.AssertExpectations(t)
}
