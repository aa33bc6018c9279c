package models

import (
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// SweepResult итог автоподтверждения
type SweepResult struct {
	Confirmed int      `json:"confirmed"`
	Failed    int      `json:"failed"`
	IDs       []string `json:"ids"` // Подтверждённые бронирования
}

// Response модели

// AddOnResponse дополнительная опция
type AddOnResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// VehicleResponse снимок автомобиля
type VehicleResponse struct {
	PlateNumber string `json:"plateNumber"`
	Type        string `json:"type,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Color       string `json:"color,omitempty"`
}

// FeedbackResponse отзыв клиента
type FeedbackResponse struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string  `json:"id"`
	UserID          int64   `json:"userId"`
	ShopID          string  `json:"shopId"`
	Date            string  `json:"date"` // "2025-10-15"
	Time            string  `json:"time"` // "10:00"
	ServiceID       string  `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	ServicePrice    float64 `json:"servicePrice"`
	Status          string  `json:"status"`

	AddOns     []AddOnResponse `json:"addOns"`
	Vehicle    VehicleResponse `json:"vehicle"`
	TotalPrice float64         `json:"totalPrice"`
	Notes      *string         `json:"notes,omitempty"`

	AutoAccepted     bool `json:"autoAccepted"`
	ImmediatePayment bool `json:"immediatePayment"`

	IsPaid        bool       `json:"isPaid"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`

	Feedback *FeedbackResponse `json:"feedback,omitempty"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	AutoConfirmedAt    *time.Time `json:"autoConfirmedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		ShopID:          b.ShopID,
		Date:            b.Date.Format(domain.DateFormat),
		Time:            b.Time.String(),
		ServiceID:       b.Service.ID,
		ServiceName:     b.Service.Name,
		DurationMinutes: b.Service.DurationMinutes,
		ServicePrice:    b.Service.Price,
		Status:          string(b.Status),
		AddOns:          make([]AddOnResponse, 0, len(b.AddOns)),
		Vehicle: VehicleResponse{
			PlateNumber: b.Vehicle.PlateNumber,
			Type:        b.Vehicle.Type,
			Brand:       b.Vehicle.Brand,
			Model:       b.Vehicle.Model,
			Color:       b.Vehicle.Color,
		},
		TotalPrice:         b.TotalPrice,
		Notes:              b.Notes,
		AutoAccepted:       b.AutoAccepted,
		ImmediatePayment:   b.ImmediatePayment,
		IsPaid:             b.IsPaid,
		PaymentMethod:      b.PaymentMethod,
		PaidAt:             b.PaidAt,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		AutoConfirmedAt:    b.AutoConfirmedAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	for _, addOn := range b.AddOns {
		resp.AddOns = append(resp.AddOns, AddOnResponse{Name: addOn.Name, Price: addOn.Price})
	}

	if b.CancelledBy != nil {
		who := string(*b.CancelledBy)
		resp.CancelledBy = &who
	}

	if b.Feedback != nil {
		resp.Feedback = &FeedbackResponse{
			Rating:      b.Feedback.Rating,
			Comment:     b.Feedback.Comment,
			SubmittedAt: b.Feedback.SubmittedAt,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
