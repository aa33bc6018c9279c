package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CarWash/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CarWash/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/shops/{shopId}/available-slots", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	date := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{ShopID: "shop-1", ServiceID: "basic", Date: date}).
		Return(&getAvailableSlots.Response{
			Date:            date,
			ShopID:          "shop-1",
			ServiceID:       "basic",
			DurationMinutes: 60,
			Slots:           []getAvailableSlots.Slot{{StartTime: "09:00", EndTime: "10:00"}},
		}, nil)

	rec := serve(NewHandler(uc, logger.NewNop()), "/shops/shop-1/available-slots?serviceId=basic&date=2026-10-16")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-16", body.Date)
	assert.Equal(t, []AvailableSlot{{StartTime: "09:00", EndTime: "10:00"}}, body.Slots)
	uc.AssertExpectations(t)
}

func TestHandle_BadQuery(t *testing.T) {
	h := NewHandler(new(MockUseCase), logger.NewNop())

	for _, target := range []string{
		"/shops/shop-1/available-slots?date=2026-10-16",
		"/shops/shop-1/available-slots?serviceId=basic",
		"/shops/shop-1/available-slots?serviceId=basic&date=16.10.2026",
	} {
		assert.Equal(t, http.StatusBadRequest, serve(h, target).Code, target)
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: id=shop-1", domain.ErrShopNotFound), http.StatusNotFound},
		{domain.ErrServiceNotFound, http.StatusNotFound},
		{domain.ErrInvalidDate, http.StatusUnprocessableEntity},
		{domain.ErrDateTooFarInFuture, http.StatusUnprocessableEntity},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, logger.NewNop()), "/shops/shop-1/available-slots?serviceId=basic&date=2026-10-16")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
