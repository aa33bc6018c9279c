package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CarWash/pkg/logger"
	"github.com/m04kA/SMC-CarWash/pkg/metrics"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

var (
	today    = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	customer = domain.Actor{UserID: 7, Role: domain.RoleCustomer}
	stranger = domain.Actor{UserID: 8, Role: domain.RoleCustomer}
	admin    = domain.Actor{UserID: 1001, Role: domain.RoleAdmin, ShopID: "shop-1"}
	outsider = domain.Actor{UserID: 1002, Role: domain.RoleAdmin, ShopID: "shop-2"}
)

func newService(t *testing.T, now time.Time) (*Service, *memory.Store, *clock) {
	t.Helper()
	store := memory.NewStore()
	c := &clock{t: now}
	svc := NewService(
		store,
		memory.NewTxManager(store),
		domain.DefaultBookingPolicy(),
		metrics.NewWithRegisterer("test", prometheus.NewRegistry()),
		logger.NewNop(),
	).WithTimeProvider(c)
	return svc, store, c
}

func seed(t *testing.T, store *memory.Store, id string, date time.Time, at string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		ID:      id,
		UserID:  customer.UserID,
		ShopID:  "shop-1",
		Date:    date,
		Time:    types.TimeString(at),
		Service: domain.ServiceSnapshot{ID: "basic", DurationMinutes: 30, Price: 20},
		Status:  status,
	}
	_, err := store.Create(context.Background(), b)
	require.NoError(t, err)
	return b
}

func TestGetByID_Access(t *testing.T) {
	svc, store, _ := newService(t, today.Add(8*time.Hour))
	seed(t, store, "b1", today, "12:00", domain.StatusPending)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, customer, "b1")
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, admin, "b1")
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, stranger, "b1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.GetByID(ctx, outsider, "b1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.GetByID(ctx, customer, "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	svc, store, _ := newService(t, today.Add(8*time.Hour))
	seed(t, store, "b1", today, "12:00", domain.StatusPending)
	seed(t, store, "b2", today, "14:00", domain.StatusConfirmed)

	list, err := svc.GetUserBookings(context.Background(), customer, customer.UserID, domain.UserBookingsFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	confirmed := domain.StatusConfirmed
	list, err = svc.GetUserBookings(context.Background(), customer, customer.UserID, domain.UserBookingsFilter{Status: &confirmed})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b2", list[0].ID)

	_, err = svc.GetUserBookings(context.Background(), stranger, customer.UserID, domain.UserBookingsFilter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetUserBookings_Upcoming(t *testing.T) {
	svc, store, _ := newService(t, today.Add(8*time.Hour))
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)
	seed(t, store, "past", yesterday, "12:00", domain.StatusConfirmed)
	seed(t, store, "later", tomorrow, "09:00", domain.StatusPending)
	seed(t, store, "today-late", today, "16:00", domain.StatusConfirmed)
	seed(t, store, "today-early", today, "10:00", domain.StatusPending)
	seed(t, store, "cancelled", tomorrow, "11:00", domain.StatusCancelled)
	seed(t, store, "done", today, "08:00", domain.StatusCompleted)

	list, err := svc.GetUserBookings(context.Background(), customer, customer.UserID, domain.UserBookingsFilter{Upcoming: true})
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"today-early", "today-late", "later"}, ids)

	pending := domain.StatusPending
	list, err = svc.GetUserBookings(context.Background(), customer, customer.UserID,
		domain.UserBookingsFilter{Status: &pending, Upcoming: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "today-early", list[0].ID)
	assert.Equal(t, "later", list[1].ID)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	now := today.Add(9 * time.Hour)

	t.Run("success well before start", func(t *testing.T) {
		svc, store, _ := newService(t, now)
		seed(t, store, "b1", today, "12:00", domain.StatusConfirmed)

		b, err := svc.Cancel(ctx, customer, "b1", "plans changed")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, b.Status)
		assert.Equal(t, domain.CancelledByCustomer, *b.CancelledBy)
		assert.Equal(t, "plans changed", *b.CancellationReason)

		stored, err := store.GetByID(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, stored.Status)
	})

	t.Run("exactly at lead time is allowed", func(t *testing.T) {
		svc, store, _ := newService(t, now)
		seed(t, store, "b1", today, "11:00", domain.StatusPending)

		_, err := svc.Cancel(ctx, customer, "b1", "")
		assert.NoError(t, err)
	})

	t.Run("too late", func(t *testing.T) {
		svc, store, _ := newService(t, now)
		seed(t, store, "b1", today, "10:30", domain.StatusPending)

		_, err := svc.Cancel(ctx, customer, "b1", "")
		assert.ErrorIs(t, err, domain.ErrTooLateToCancel)

		stored, err := store.GetByID(ctx, "b1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, stored.Status)
	})

	t.Run("paid booking fails regardless of time", func(t *testing.T) {
		svc, store, _ := newService(t, now)
		b := seed(t, store, "far", today.AddDate(0, 0, 10), "12:00", domain.StatusConfirmed)
		b.IsPaid = true
		require.NoError(t, store.Update(ctx, b))

		near := seed(t, store, "near", today, "09:10", domain.StatusConfirmed)
		near.IsPaid = true
		require.NoError(t, store.Update(ctx, near))

		_, err := svc.Cancel(ctx, customer, "far", "")
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)

		_, err = svc.Cancel(ctx, customer, "near", "")
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	})

	t.Run("not owner", func(t *testing.T) {
		svc, store, _ := newService(t, now)
		seed(t, store, "b1", today, "12:00", domain.StatusPending)

		_, err := svc.Cancel(ctx, stranger, "b1", "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("terminal status", func(t *testing.T) {
		svc, store, _ := newService(t, now)
		seed(t, store, "b1", today, "12:00", domain.StatusCompleted)

		_, err := svc.Cancel(ctx, customer, "b1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newService(t, now)
		_, err := svc.Cancel(ctx, customer, "nope", "")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestPay(t *testing.T) {
	ctx := context.Background()

	t.Run("before start keeps status", func(t *testing.T) {
		svc, store, _ := newService(t, today.Add(9*time.Hour))
		seed(t, store, "b1", today, "12:00", domain.StatusConfirmed)

		b, err := svc.Pay(ctx, customer, "b1", "card")
		require.NoError(t, err)
		assert.True(t, b.IsPaid)
		assert.Equal(t, "card", *b.PaymentMethod)
		assert.Equal(t, domain.StatusConfirmed, b.Status)
	})

	t.Run("at start completes", func(t *testing.T) {
		svc, store, _ := newService(t, today.Add(12*time.Hour))
		seed(t, store, "b1", today, "12:00", domain.StatusPending)

		b, err := svc.Pay(ctx, customer, "b1", "cash")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, b.Status)
	})

	t.Run("twice", func(t *testing.T) {
		svc, store, _ := newService(t, today.Add(9*time.Hour))
		seed(t, store, "b1", today, "12:00", domain.StatusConfirmed)

		_, err := svc.Pay(ctx, customer, "b1", "card")
		require.NoError(t, err)
		_, err = svc.Pay(ctx, customer, "b1", "card")
		assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	})

	t.Run("cancelled", func(t *testing.T) {
		svc, store, _ := newService(t, today.Add(9*time.Hour))
		seed(t, store, "b1", today, "12:00", domain.StatusCancelled)

		_, err := svc.Pay(ctx, customer, "b1", "card")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("empty method", func(t *testing.T) {
		svc, _, _ := newService(t, today.Add(9*time.Hour))
		_, err := svc.Pay(ctx, customer, "b1", " ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSubmitFeedback(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t, today.Add(15*time.Hour))
	seed(t, store, "done", today, "12:00", domain.StatusCompleted)
	seed(t, store, "open", today, "16:00", domain.StatusConfirmed)

	b, err := svc.SubmitFeedback(ctx, customer, "done", 4, "good")
	require.NoError(t, err)
	assert.Equal(t, 4, b.Feedback.Rating)

	b, err = svc.SubmitFeedback(ctx, customer, "done", 5, "even better")
	require.NoError(t, err)
	assert.Equal(t, 5, b.Feedback.Rating)
	assert.Equal(t, "even better", b.Feedback.Comment)

	_, err = svc.SubmitFeedback(ctx, customer, "open", 5, "")
	assert.ErrorIs(t, err, domain.ErrFeedbackNotAllowed)

	_, err = svc.SubmitFeedback(ctx, customer, "done", 6, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SubmitFeedback(ctx, stranger, "done", 3, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdminTransitions(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t, today.Add(11*time.Hour+50*time.Minute))
	seed(t, store, "b1", today, "12:00", domain.StatusPending)
	seed(t, store, "b2", today, "13:00", domain.StatusConfirmed)

	_, err := svc.Confirm(ctx, outsider, "b1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	b, err := svc.Confirm(ctx, admin, "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, admin.UserID, *b.UpdatedBy)

	b, err = svc.Complete(ctx, admin, "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, b.Status)

	_, err = svc.Complete(ctx, admin, "b1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Администратор отменяет без ограничения по времени
	b, err = svc.AdminCancel(ctx, admin, "b2", "equipment failure")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
	assert.Equal(t, domain.CancelledByAdmin, *b.CancelledBy)

	seed(t, store, "b3", today, "15:00", domain.StatusPending)
	b, err = svc.Reject(ctx, admin, "b3", "closed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, b.Status)
}

func TestAutoConfirmSweep(t *testing.T) {
	ctx := context.Background()
	now := today.Add(10 * time.Hour)
	svc, store, c := newService(t, now)

	seed(t, store, "soon", today, "10:20", domain.StatusPending)
	seed(t, store, "edge", today, "10:30", domain.StatusPending)
	seed(t, store, "late", today, "10:45", domain.StatusPending)
	seed(t, store, "past", today, "09:30", domain.StatusPending)
	seed(t, store, "confirmed", today, "10:10", domain.StatusConfirmed)
	seed(t, store, "tomorrow", today.AddDate(0, 0, 1), "10:10", domain.StatusPending)

	result, err := svc.AutoConfirmSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Confirmed)
	assert.Equal(t, 0, result.Failed)
	assert.ElementsMatch(t, []string{"soon", "edge", "past"}, result.IDs)

	soon, err := store.GetByID(ctx, "soon")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, soon.Status)
	require.NotNil(t, soon.AutoConfirmedAt)
	assert.Equal(t, now, *soon.AutoConfirmedAt)
	assert.Nil(t, soon.UpdatedBy)

	late, err := store.GetByID(ctx, "late")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, late.Status)

	next, err := store.GetByID(ctx, "tomorrow")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, next.Status)

	// Повторный запуск ничего не меняет
	snapshot := snapshotStatuses(t, store)
	again, err := svc.AutoConfirmSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Confirmed)
	assert.Equal(t, snapshot, snapshotStatuses(t, store))

	reloaded, err := store.GetByID(ctx, "soon")
	require.NoError(t, err)
	assert.Equal(t, now, *reloaded.AutoConfirmedAt)

	// Позже подтверждается и оставшееся
	c.t = now.Add(20 * time.Minute)
	result, err = svc.AutoConfirmSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"late"}, result.IDs)
}

func TestAutoConfirmSweep_SkipsBrokenRecords(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t, today.Add(10*time.Hour))

	seed(t, store, "broken", today, "bad", domain.StatusPending)
	seed(t, store, "ok", today, "10:15", domain.StatusPending)

	result, err := svc.AutoConfirmSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Confirmed)
	assert.Equal(t, 1, result.Failed)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetPendingByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passThroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestAutoConfirmSweep_UpdateFailureIsCounted(t *testing.T) {
	now := today.Add(10 * time.Hour)
	repo := new(MockBookingRepository)

	first := &domain.Booking{ID: "a", ShopID: "shop-1", Date: today, Time: "10:05", Status: domain.StatusPending}
	second := &domain.Booking{ID: "b", ShopID: "shop-1", Date: today, Time: "10:10", Status: domain.StatusPending}

	repo.On("GetPendingByDate", mock.Anything, today).Return([]*domain.Booking{first, second}, nil)
	repo.On("GetByIDForUpdate", mock.Anything, "a").Return(first, nil)
	repo.On("GetByIDForUpdate", mock.Anything, "b").Return(second, nil)
	repo.On("Update", mock.Anything, first).Return(errors.New("connection reset"))
	repo.On("Update", mock.Anything, second).Return(nil)

	svc := NewService(repo, passThroughTx{}, domain.DefaultBookingPolicy(), (*metrics.Metrics)(nil), logger.NewNop()).
		WithTimeProvider(&clock{t: now})

	result, err := svc.AutoConfirmSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Confirmed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"b"}, result.IDs)
	repo.AssertExpectations(t)
}

func TestAutoConfirmSweep_RepositoryError(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetPendingByDate", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	svc := NewService(repo, passThroughTx{}, domain.DefaultBookingPolicy(), (*metrics.Metrics)(nil), logger.NewNop())

	_, err := svc.AutoConfirmSweep(context.Background())
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func snapshotStatuses(t *testing.T, store *memory.Store) map[string]domain.BookingStatus {
	t.Helper()
	out := make(map[string]domain.BookingStatus)
	for _, id := range []string{"soon", "edge", "late", "past", "confirmed", "tomorrow"} {
		b, err := store.GetByID(context.Background(), id)
		require.NoError(t, err)
		out[id] = b.Status
	}
	return out
}
