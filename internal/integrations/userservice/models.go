package userservice

import "github.com/m04kA/SMC-CarWash/internal/domain"

// Vehicle модель автомобиля из UserService
type Vehicle struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	PlateNumber string `json:"plate_number"`
	Type        string `json:"type"` // sedan, suv, hatchback...
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Color       string `json:"color"`
}

// ToSnapshot переводит автомобиль в снимок бронирования.
// Пустые поля дополняются данными из fallback.
func (v *Vehicle) ToSnapshot(fallback domain.VehicleSnapshot) domain.VehicleSnapshot {
	return domain.VehicleSnapshot{
		PlateNumber: firstNonEmpty(v.PlateNumber, fallback.PlateNumber),
		Type:        firstNonEmpty(v.Type, fallback.Type),
		Brand:       firstNonEmpty(v.Brand, fallback.Brand),
		Model:       firstNonEmpty(v.Model, fallback.Model),
		Color:       firstNonEmpty(v.Color, fallback.Color),
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
