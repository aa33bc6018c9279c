package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWash/internal/infra/storage/booking"
)

var (
	// ErrBookingNotFound общий с Postgres-репозиторием, сервисы проверяют одну ошибку
	ErrBookingNotFound = bookingRepo.ErrBookingNotFound

	// ErrDuplicateID возвращается при повторном создании бронирования с тем же ID
	ErrDuplicateID = errors.New("memory.store: duplicate booking id")
)

// Store хранилище бронирований в памяти.
// Одна запись на бронирование; выборки по пользователю, мойке и дате считаются по ней.
type Store struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	now      func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[string]*domain.Booking),
		now:      time.Now,
	}
}

// Create сохраняет новое бронирование
func (s *Store) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[booking.ID]; exists {
		return nil, ErrDuplicateID
	}

	now := s.now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = clone(booking)

	return booking, nil
}

// GetByID получает бронирование по ID
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return clone(b), nil
}

// GetByIDForUpdate то же, что GetByID: транзакции памяти выполняются последовательно
func (s *Store) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return s.GetByID(ctx, id)
}

// GetByUserID бронирования пользователя, новые первыми
func (s *Store) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return s.collect(func(b *domain.Booking) bool {
		return b.UserID == userID && (status == nil || b.Status == *status)
	}, newestFirst), nil
}

// GetByShopWithFilter бронирования мойки по периоду и статусу
func (s *Store) GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	var from, to time.Time
	if filter.From != nil {
		from = domain.CalendarDay(*filter.From)
	}
	if filter.To != nil {
		to = domain.CalendarDay(*filter.To)
	}

	match := func(b *domain.Booking) bool {
		if b.ShopID != filter.ShopID {
			return false
		}
		if filter.From != nil && b.Date.Before(from) {
			return false
		}
		if filter.To != nil && b.Date.After(to) {
			return false
		}
		if filter.Status != nil {
			return b.Status == *filter.Status
		}
		return filter.IncludeInactive || b.IsBlocking()
	}

	order := newestFirst
	if filter.SingleDay() {
		order = earliestFirst
	}

	return s.collect(match, order), nil
}

// GetPendingByDate ожидающие подтверждения бронирования всех моек на дату
func (s *Store) GetPendingByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	day := domain.CalendarDay(date)
	return s.collect(func(b *domain.Booking) bool {
		return b.Status == domain.StatusPending && b.Date.Equal(day)
	}, earliestFirst), nil
}

// Update заменяет сохранённое бронирование
func (s *Store) Update(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; !ok {
		return ErrBookingNotFound
	}

	// Переход статуса сам проставляет UpdatedAt своим временем
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = s.now()
	}
	s.bookings[booking.ID] = clone(booking)
	return nil
}

// LockShopDay ничего не делает: изоляцию обеспечивает TxManager
func (s *Store) LockShopDay(ctx context.Context, shopID string, date time.Time) error {
	return nil
}

func (s *Store) collect(match func(*domain.Booking) bool, less func(a, b *domain.Booking) bool) []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if match(b) {
			result = append(result, clone(b))
		}
	}

	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

func (s *Store) snapshot() map[string]*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]*domain.Booking, len(s.bookings))
	for id, b := range s.bookings {
		snap[id] = b
	}
	return snap
}

func (s *Store) restore(snap map[string]*domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snap
}

func earliestFirst(a, b *domain.Booking) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.Time.IsBefore(b.Time)
}

func newestFirst(a, b *domain.Booking) bool {
	return earliestFirst(b, a)
}

// clone копирует бронирование вместе со ссылочными полями
func clone(b *domain.Booking) *domain.Booking {
	c := *b
	if b.AddOns != nil {
		c.AddOns = append([]domain.AddOn(nil), b.AddOns...)
	}
	if b.Feedback != nil {
		f := *b.Feedback
		c.Feedback = &f
	}
	c.Notes = copyPtr(b.Notes)
	c.PaymentMethod = copyPtr(b.PaymentMethod)
	c.PaidAt = copyPtr(b.PaidAt)
	c.CancelledAt = copyPtr(b.CancelledAt)
	c.CancelledBy = copyPtr(b.CancelledBy)
	c.CancellationReason = copyPtr(b.CancellationReason)
	c.AutoConfirmedAt = copyPtr(b.AutoConfirmedAt)
	c.UpdatedBy = copyPtr(b.UpdatedBy)
	return &c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
