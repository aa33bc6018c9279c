package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	createBooking "github.com/m04kA/SMC-CarWash/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ShopID    string         `json:"shopId"`
	ServiceID string         `json:"serviceId"`
	Date      string         `json:"date"`      // "2025-10-15"
	StartTime string         `json:"startTime"` // "10:00"
	AddOns    []AddOnRequest `json:"addOns,omitempty"`
	Vehicle   VehicleRequest `json:"vehicle"`
	Notes     *string        `json:"notes,omitempty"`
}

// AddOnRequest дополнительная опция
type AddOnRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// VehicleRequest автомобиль клиента; используется, если UserService недоступен
type VehicleRequest struct {
	PlateNumber string `json:"plateNumber"`
	Type        string `json:"type,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	addOns := make([]domain.AddOn, 0, len(r.AddOns))
	for _, a := range r.AddOns {
		addOns = append(addOns, domain.AddOn{Name: a.Name, Price: a.Price})
	}

	return &createBooking.Request{
		UserID:    userID,
		ShopID:    r.ShopID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
		AddOns:    addOns,
		Vehicle: domain.VehicleSnapshot{
			PlateNumber: r.Vehicle.PlateNumber,
			Type:        r.Vehicle.Type,
			Brand:       r.Vehicle.Brand,
			Model:       r.Vehicle.Model,
			Color:       r.Vehicle.Color,
		},
		Notes: r.Notes,
	}, nil
}
