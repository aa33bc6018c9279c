package domain

import (
	"fmt"
	"time"
)

// BookingPolicy holds the time rules applied to bookings of every shop
type BookingPolicy struct {
	AdvanceBookingDays       int // 0 = unlimited
	MinBookingNoticeMinutes  int
	CancellationLeadMinutes  int
	AutoConfirmWindowMinutes int
	Location                 *time.Location
}

// DefaultBookingPolicy returns the policy used when nothing is configured
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		AdvanceBookingDays:       DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes:  DefaultMinBookingNoticeMinutes,
		CancellationLeadMinutes:  DefaultCancellationLeadMinutes,
		AutoConfirmWindowMinutes: DefaultAutoConfirmWindowMinutes,
		Location:                 time.UTC,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// Validate checks the policy bounds
func (p BookingPolicy) Validate() error {
	if p.AdvanceBookingDays < 0 || p.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be in [0, %d]", ErrInvalidInput, MaxAdvanceBookingDays)
	}
	if p.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: min booking notice must be non-negative", ErrInvalidInput)
	}
	if p.CancellationLeadMinutes < 0 {
		return fmt.Errorf("%w: cancellation lead must be non-negative", ErrInvalidInput)
	}
	if p.AutoConfirmWindowMinutes < 0 {
		return fmt.Errorf("%w: auto-confirm window must be non-negative", ErrInvalidInput)
	}
	return nil
}

// Today returns the current calendar day in the policy location
func (p BookingPolicy) Today(now time.Time) time.Time {
	return CalendarDay(now.In(p.location()))
}

// StartOf returns the booking start moment in the policy location
func (p BookingPolicy) StartOf(b *Booking) (time.Time, error) {
	return b.StartsAt(p.location())
}

// In converts the moment into the policy location
func (p BookingPolicy) In(t time.Time) time.Time {
	return t.In(p.location())
}

func (p BookingPolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// CalendarDay normalizes a moment to its calendar day as UTC midnight.
// Booking dates are always stored in this form.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CheckDate rejects days in the past and days beyond the booking horizon
func (p BookingPolicy) CheckDate(date, now time.Time) error {
	day := CalendarDay(date)
	today := p.Today(now)

	if day.Before(today) {
		return ErrInvalidDate
	}
	if p.HasAdvanceBookingLimit() && day.After(today.AddDate(0, 0, p.AdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, p.AdvanceBookingDays)
	}
	return nil
}

// EarliestStartMinutes returns the first bookable minute of the day.
// For today it is now plus the booking notice, for later days it is midnight.
func (p BookingPolicy) EarliestStartMinutes(date, now time.Time) int {
	if !CalendarDay(date).Equal(p.Today(now)) {
		return 0
	}
	local := p.In(now)
	return local.Hour()*60 + local.Minute() + p.MinBookingNoticeMinutes
}

// IsToday reports whether the calendar day is today in the policy location
func (p BookingPolicy) IsToday(date, now time.Time) bool {
	return CalendarDay(date).Equal(p.Today(now))
}
