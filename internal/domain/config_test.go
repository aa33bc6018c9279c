package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingPolicy_CheckDate(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	policy := DefaultBookingPolicy()
	policy.Location = loc

	// 23:30 UTC is already the next day in UTC+8
	now := time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC)
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, policy.CheckDate(today, now))
	assert.ErrorIs(t, policy.CheckDate(today.AddDate(0, 0, -1), now), ErrInvalidDate)
	assert.NoError(t, policy.CheckDate(today.AddDate(0, 0, 30), now))
	assert.ErrorIs(t, policy.CheckDate(today.AddDate(0, 0, 31), now), ErrDateTooFarInFuture)

	policy.AdvanceBookingDays = 0
	assert.NoError(t, policy.CheckDate(today.AddDate(1, 0, 0), now))
}

func TestBookingPolicy_EarliestStartMinutes(t *testing.T) {
	policy := DefaultBookingPolicy()
	now := time.Date(2026, 10, 15, 9, 10, 0, 0, time.UTC)

	assert.Equal(t, 9*60+10+120, policy.EarliestStartMinutes(CalendarDay(now), now))
	assert.Equal(t, 0, policy.EarliestStartMinutes(CalendarDay(now).AddDate(0, 0, 1), now))
	assert.True(t, policy.IsToday(now, now))
}

func TestBookingPolicy_Validate(t *testing.T) {
	require.NoError(t, DefaultBookingPolicy().Validate())

	p := DefaultBookingPolicy()
	p.AdvanceBookingDays = MaxAdvanceBookingDays + 1
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)

	p = DefaultBookingPolicy()
	p.CancellationLeadMinutes = -1
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
}

func TestBookingPolicy_StartOf(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	policy := BookingPolicy{Location: loc}
	b := &Booking{Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), Time: "10:30"}

	start, err := policy.StartOf(b)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 2, 30, 0, 0, time.UTC), start.UTC())
}
