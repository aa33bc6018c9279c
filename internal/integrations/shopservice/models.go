package shopservice

import (
	"fmt"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// Shop модель мойки из ShopService
type Shop struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OpenTime   string    `json:"open_time"`  // "08:00"
	CloseTime  string    `json:"close_time"` // "20:00"
	AutoAccept bool      `json:"auto_accept"`
	Services   []Service `json:"services"`
	AdminIDs   []int64   `json:"admin_ids"`
}

// Service модель услуги мойки
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

// ToDomain конвертирует ответ сервиса в domain модель
func (s *Shop) ToDomain() (*domain.Shop, error) {
	open, err := types.NewTimeStringFromString(s.OpenTime)
	if err != nil {
		return nil, err
	}
	closeAt, err := types.NewTimeStringFromString(s.CloseTime)
	if err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(s.Services))
	for _, svc := range s.Services {
		if svc.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service %s has non-positive duration %d",
				ErrInvalidResponse, svc.ID, svc.DurationMinutes)
		}
		services = append(services, domain.Service{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}

	return &domain.Shop{
		ID:         s.ID,
		Name:       s.Name,
		OpenTime:   open,
		CloseTime:  closeAt,
		AutoAccept: s.AutoAccept,
		Services:   services,
		AdminIDs:   s.AdminIDs,
	}, nil
}
