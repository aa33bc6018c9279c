package userservice

import (
	"context"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// RequestVehicle используется, когда UserService не настроен: автомобиль берётся из запроса
type RequestVehicle struct{}

func (RequestVehicle) GetVehicle(_ context.Context, _ int64, fallback domain.VehicleSnapshot) domain.VehicleSnapshot {
	return fallback
}
