package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(status BookingStatus) *Booking {
	return &Booking{
		ID:     "b-1",
		UserID: 7,
		ShopID: "shop-1",
		Date:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Time:   "10:00",
		Status: status,
	}
}

func TestBookingStatus_Blocking(t *testing.T) {
	assert.True(t, StatusPending.IsBlocking())
	assert.True(t, StatusConfirmed.IsBlocking())
	assert.True(t, StatusCompleted.IsBlocking())
	assert.False(t, StatusCancelled.IsBlocking())
	assert.False(t, StatusRejected.IsBlocking())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseBookingStatus("in_progress")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBooking_Transitions(t *testing.T) {
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	admin := int64(99)

	t.Run("confirm only from pending", func(t *testing.T) {
		b := newBooking(StatusPending)
		require.NoError(t, b.Confirm(now, &admin))
		assert.Equal(t, StatusConfirmed, b.Status)
		assert.Equal(t, &admin, b.UpdatedBy)

		assert.ErrorIs(t, b.Confirm(now, &admin), ErrInvalidTransition)
	})

	t.Run("complete only from confirmed", func(t *testing.T) {
		b := newBooking(StatusPending)
		assert.ErrorIs(t, b.Complete(now, &admin), ErrInvalidTransition)

		b.Status = StatusConfirmed
		require.NoError(t, b.Complete(now, &admin))
		assert.Equal(t, StatusCompleted, b.Status)
	})

	t.Run("cancel records who and when", func(t *testing.T) {
		b := newBooking(StatusConfirmed)
		require.NoError(t, b.Cancel(now, 7, CancelledByCustomer, "plans changed"))

		assert.Equal(t, StatusCancelled, b.Status)
		require.NotNil(t, b.CancelledAt)
		assert.Equal(t, now, *b.CancelledAt)
		assert.Equal(t, CancelledByCustomer, *b.CancelledBy)
		assert.Equal(t, "plans changed", *b.CancellationReason)
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		for _, status := range []BookingStatus{StatusCompleted, StatusCancelled, StatusRejected} {
			b := newBooking(status)
			assert.ErrorIs(t, b.Cancel(now, 7, CancelledByCustomer, ""), ErrInvalidTransition, status)
			assert.ErrorIs(t, b.Reject(now, admin, ""), ErrInvalidTransition, status)
			assert.ErrorIs(t, b.Confirm(now, &admin), ErrInvalidTransition, status)
		}
	})

	t.Run("auto confirm stamps time", func(t *testing.T) {
		b := newBooking(StatusPending)
		require.NoError(t, b.AutoConfirm(now))
		require.NotNil(t, b.AutoConfirmedAt)
		assert.Nil(t, b.UpdatedBy)
	})
}

func TestBooking_MarkPaid(t *testing.T) {
	t.Run("before start keeps status", func(t *testing.T) {
		b := newBooking(StatusConfirmed)
		now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

		require.NoError(t, b.MarkPaid(now, 7, "card"))
		assert.True(t, b.IsPaid)
		assert.Equal(t, "card", *b.PaymentMethod)
		assert.Equal(t, StatusConfirmed, b.Status)
	})

	t.Run("after start completes", func(t *testing.T) {
		b := newBooking(StatusPending)
		now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

		require.NoError(t, b.MarkPaid(now, 7, "cash"))
		assert.Equal(t, StatusCompleted, b.Status)
	})

	t.Run("second payment fails", func(t *testing.T) {
		b := newBooking(StatusConfirmed)
		b.IsPaid = true
		assert.ErrorIs(t, b.MarkPaid(time.Now(), 7, "card"), ErrAlreadyPaid)
	})

	t.Run("cancelled cannot be paid", func(t *testing.T) {
		b := newBooking(StatusCancelled)
		assert.ErrorIs(t, b.MarkPaid(time.Now(), 7, "card"), ErrInvalidTransition)
	})
}

func TestBooking_SetFeedback(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	b := newBooking(StatusConfirmed)
	assert.ErrorIs(t, b.SetFeedback(now, 5, "great"), ErrFeedbackNotAllowed)

	b.Status = StatusCompleted
	assert.ErrorIs(t, b.SetFeedback(now, 0, ""), ErrInvalidInput)
	assert.ErrorIs(t, b.SetFeedback(now, 6, ""), ErrInvalidInput)

	require.NoError(t, b.SetFeedback(now, 4, "good"))
	require.NoError(t, b.SetFeedback(now.Add(time.Hour), 5, "even better"))
	assert.Equal(t, 5, b.Feedback.Rating)
	assert.Equal(t, "even better", b.Feedback.Comment)
}

func TestActor_IsAdminOf(t *testing.T) {
	admin := Actor{UserID: 1, Role: RoleAdmin, ShopID: "shop-1"}
	assert.True(t, admin.IsAdminOf("shop-1"))
	assert.False(t, admin.IsAdminOf("shop-2"))

	customer := Actor{UserID: 1, Role: RoleCustomer, ShopID: "shop-1"}
	assert.False(t, customer.IsAdminOf("shop-1"))
}
