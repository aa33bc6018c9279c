package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRejected:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}

// CancelledBy identifies who cancelled a booking
type CancelledBy string

const (
	CancelledByCustomer CancelledBy = "customer"
	CancelledByAdmin    CancelledBy = "admin"
)

// AddOn is an extra priced option selected together with the service
type AddOn struct {
	Name  string
	Price float64
}

// VehicleSnapshot is the vehicle description copied into the booking at creation
type VehicleSnapshot struct {
	PlateNumber string
	Type        string
	Brand       string
	Model       string
	Color       string
}

// Feedback is the customer's review of a completed booking
type Feedback struct {
	Rating      int
	Comment     string
	SubmittedAt time.Time
}

// Booking represents a car wash reservation
type Booking struct {
	ID     string
	UserID int64
	ShopID string

	Date time.Time // calendar day, time part is zero
	Time types.TimeString

	// Denormalized at creation
	Service    ServiceSnapshot
	AddOns     []AddOn
	Vehicle    VehicleSnapshot
	TotalPrice float64
	Notes      *string

	Status           BookingStatus
	AutoAccepted     bool
	ImmediatePayment bool

	IsPaid        bool
	PaymentMethod *string
	PaidAt        *time.Time

	Feedback *Feedback

	CancelledAt        *time.Time
	CancelledBy        *CancelledBy
	CancellationReason *string
	AutoConfirmedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy *int64
}

// ServiceSnapshot copies the service definition at booking time
type ServiceSnapshot struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
}

// IsBlocking reports whether the booking occupies its time window
func (b *Booking) IsBlocking() bool {
	return b.Status.IsBlocking()
}

// IsBlocking reports whether bookings in this status hold their slot
func (s BookingStatus) IsBlocking() bool {
	return slices.Contains(BlockingStatuses, s)
}

// IsTerminal reports whether no further status transitions are possible
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// IsOwnedBy reports whether the booking belongs to the user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// CanBeCancelled returns true if the booking can be cancelled or rejected
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// StartMinutes returns the reservation start in minutes since midnight
func (b *Booking) StartMinutes() (int, error) {
	return b.Time.Minutes()
}

// StartsAt returns the start moment of the booking's calendar day and time in loc
func (b *Booking) StartsAt(loc *time.Location) (time.Time, error) {
	y, m, d := b.Date.Date()
	return b.Time.On(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

// Confirm moves a pending booking to confirmed
func (b *Booking) Confirm(now time.Time, by *int64) error {
	if b.Status != StatusPending {
		return fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusConfirmed
	b.touch(now, by)
	return nil
}

// AutoConfirm confirms a pending booking on behalf of the system
func (b *Booking) AutoConfirm(now time.Time) error {
	if err := b.Confirm(now, nil); err != nil {
		return err
	}
	b.AutoConfirmedAt = &now
	return nil
}

// Complete moves a confirmed booking to completed
func (b *Booking) Complete(now time.Time, by *int64) error {
	if b.Status != StatusConfirmed {
		return fmt.Errorf("%w: complete from %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusCompleted
	b.touch(now, by)
	return nil
}

// Cancel moves a pending or confirmed booking to cancelled
func (b *Booking) Cancel(now time.Time, by int64, who CancelledBy, reason string) error {
	if !b.CanBeCancelled() {
		return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.CancelledBy = &who
	if reason != "" {
		b.CancellationReason = &reason
	}
	b.touch(now, &by)
	return nil
}

// Reject moves a pending or confirmed booking to rejected
func (b *Booking) Reject(now time.Time, by int64, reason string) error {
	if !b.CanBeCancelled() {
		return fmt.Errorf("%w: reject from %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusRejected
	if reason != "" {
		b.CancellationReason = &reason
	}
	b.touch(now, &by)
	return nil
}

// MarkPaid records the payment. A booking whose start has passed becomes completed.
// The start is evaluated in now's location.
func (b *Booking) MarkPaid(now time.Time, by int64, method string) error {
	if b.IsPaid {
		return ErrAlreadyPaid
	}
	if b.Status == StatusCancelled || b.Status == StatusRejected {
		return fmt.Errorf("%w: pay for %s booking", ErrInvalidTransition, b.Status)
	}

	startsAt, err := b.StartsAt(now.Location())
	if err != nil {
		return err
	}

	b.IsPaid = true
	b.PaymentMethod = &method
	b.PaidAt = &now
	if (b.Status == StatusPending || b.Status == StatusConfirmed) && !now.Before(startsAt) {
		b.Status = StatusCompleted
	}
	b.touch(now, &by)
	return nil
}

// SetFeedback stores or replaces the customer's feedback
func (b *Booking) SetFeedback(now time.Time, rating int, comment string) error {
	if b.Status != StatusCompleted {
		return fmt.Errorf("%w: status %s", ErrFeedbackNotAllowed, b.Status)
	}
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, MinRating, MaxRating)
	}
	b.Feedback = &Feedback{
		Rating:      rating,
		Comment:     comment,
		SubmittedAt: now,
	}
	owner := b.UserID
	b.touch(now, &owner)
	return nil
}

func (b *Booking) touch(now time.Time, by *int64) {
	b.UpdatedAt = now
	b.UpdatedBy = by
}

// UserBookingsFilter фильтр для получения бронирований клиента
type UserBookingsFilter struct {
	Status   *BookingStatus // Фильтр по статусу
	Upcoming bool           // Только предстоящие: с сегодняшнего дня, ожидающие и подтверждённые
}

// ShopBookingsFilter фильтр для получения бронирований мойки
type ShopBookingsFilter struct {
	ShopID          string         // Обязательный параметр
	From            *time.Time     // Начало периода (включительно)
	To              *time.Time     // Конец периода (включительно)
	Status          *BookingStatus // Фильтр по статусу
	IncludeInactive bool           // Включать отменённые и отклонённые
}

// SingleDay true, если фильтр ограничен одной датой
func (f ShopBookingsFilter) SingleDay() bool {
	return f.From != nil && f.To != nil && f.From.Equal(*f.To)
}
