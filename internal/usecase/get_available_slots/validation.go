package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ShopID) == "" {
		return fmt.Errorf("%w: shopID is required", domain.ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceID is required", domain.ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	return nil
}

// dropBeforeNotice убирает слоты, начинающиеся раньше earliest
func dropBeforeNotice(slots []domain.AvailableSlot, earliest int) []domain.AvailableSlot {
	if earliest <= 0 {
		return slots
	}

	result := make([]domain.AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		start, err := slot.StartTime.Minutes()
		if err != nil || start < earliest {
			continue
		}
		result = append(result, slot)
	}
	return result
}
