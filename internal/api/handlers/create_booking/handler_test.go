package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWash/internal/api/middleware"
	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-CarWash/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarWash/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{"shopId":"shop-1","serviceId":"basic","date":"2026-10-16","startTime":"10:00",` +
	`"addOns":[{"name":"wax","price":5}],"vehicle":{"plateNumber":"A123BC"}}`

func post(h *Handler, body string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 7, Role: domain.RoleCustomer}))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.UserID == 7 &&
			r.ShopID == "shop-1" &&
			r.StartTime == "10:00" &&
			r.Date.Equal(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)) &&
			len(r.AddOns) == 1 &&
			r.Vehicle.PlateNumber == "A123BC"
	})).Return(&createBooking.Response{Booking: &domain.Booking{
		ID:     "b1",
		UserID: 7,
		ShopID: "shop-1",
		Date:   time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		Time:   "10:00",
		Status: domain.StatusPending,
	}}, nil)

	rec := post(NewHandler(uc, logger.NewNop()), validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "b1", body.ID)
	assert.Equal(t, "pending", body.Status)
	uc.AssertExpectations(t)
}

func TestHandle_RequestErrors(t *testing.T) {
	h := NewHandler(new(MockUseCase), logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, post(h, validBody, false).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{`, true).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"date":"2026-10-16","startTime":"25:00"}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"date":"tomorrow","startTime":"10:00"}`, true).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrSlotUnavailable, http.StatusConflict},
		{domain.ErrShopNotFound, http.StatusNotFound},
		{domain.ErrServiceNotFound, http.StatusNotFound},
		{domain.ErrInvalidDate, http.StatusUnprocessableEntity},
		{domain.ErrDateTooFarInFuture, http.StatusUnprocessableEntity},
		{domain.ErrTooLateToBook, http.StatusUnprocessableEntity},
		{domain.ErrOutsideWorkingHours, http.StatusUnprocessableEntity},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.want, post(NewHandler(uc, logger.NewNop()), validBody, true).Code)
		})
	}
}
