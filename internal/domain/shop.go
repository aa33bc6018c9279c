package domain

import "github.com/m04kA/SMC-CarWash/pkg/types"

// Service is a catalog entry offered by a shop
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
}

// Snapshot copies the service into a booking
func (s Service) Snapshot() ServiceSnapshot {
	return ServiceSnapshot{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// Shop is a car wash location with its operating hours and catalog
type Shop struct {
	ID         string
	Name       string
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	AutoAccept bool
	Services   []Service
	AdminIDs   []int64
}

// FindService looks up a catalog entry by id
func (s *Shop) FindService(id string) (Service, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return Service{}, false
}

// HasAdmin reports whether the user administers the shop
func (s *Shop) HasAdmin(userID int64) bool {
	for _, id := range s.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
