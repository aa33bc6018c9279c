package cancel_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWash/internal/api/middleware"
	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarWash/internal/service/bookings"
	"github.com/m04kA/SMC-CarWash/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarWash/pkg/logger"
	"github.com/m04kA/SMC-CarWash/pkg/metrics"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

type clock struct{ t time.Time }

func (c clock) Now() time.Time { return c.t }

func setup(t *testing.T) http.Handler {
	t.Helper()
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	for id, at := range map[string]string{"far": "15:00", "soon": "10:30"} {
		_, err := store.Create(context.Background(), &domain.Booking{
			ID:      id,
			UserID:  7,
			ShopID:  "shop-1",
			Date:    day,
			Time:    types.TimeString(at),
			Service: domain.ServiceSnapshot{DurationMinutes: 30},
			Status:  domain.StatusConfirmed,
		})
		require.NoError(t, err)
	}

	svc := bookings.NewService(
		store,
		memory.NewTxManager(store),
		domain.DefaultBookingPolicy(),
		(*metrics.Metrics)(nil),
		logger.NewNop(),
	).WithTimeProvider(clock{t: day.Add(9 * time.Hour)})

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)
	return r
}

func patch(h http.Handler, id, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+id+"/cancel", bytes.NewBufferString(body))
	req.Header.Set(middleware.HeaderUserID, userID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	h := setup(t)

	rec := patch(h, "far", "7", `{"cancellationReason":"changed plans"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)
	require.NotNil(t, body.CancellationReason)
	assert.Equal(t, "changed plans", *body.CancellationReason)
}

func TestHandle_EmptyBodyAllowed(t *testing.T) {
	assert.Equal(t, http.StatusOK, patch(setup(t), "far", "7", "").Code)
}

func TestHandle_Errors(t *testing.T) {
	h := setup(t)

	assert.Equal(t, http.StatusUnprocessableEntity, patch(h, "soon", "7", "").Code)
	assert.Equal(t, http.StatusForbidden, patch(h, "far", "8", "").Code)
	assert.Equal(t, http.StatusNotFound, patch(h, "missing", "7", "").Code)
	assert.Equal(t, http.StatusBadRequest, patch(h, "far", "7", `{"unknown":1}`).Code)
	assert.Equal(t, http.StatusUnauthorized, patch(h, "far", "", "").Code)

	require.Equal(t, http.StatusOK, patch(h, "far", "7", "").Code)
	assert.Equal(t, http.StatusConflict, patch(h, "far", "7", "").Code)
}
