package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", domain.ErrInvalidInput)
	}

	if strings.TrimSpace(req.ShopID) == "" {
		return fmt.Errorf("%w: shopID is required", domain.ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceID is required", domain.ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", domain.ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", domain.ErrInvalidInput, err)
	}

	for i, addOn := range req.AddOns {
		if strings.TrimSpace(addOn.Name) == "" {
			return fmt.Errorf("%w: addOns[%d].name is required", domain.ErrInvalidInput, i)
		}
		if addOn.Price < 0 {
			return fmt.Errorf("%w: addOns[%d].price must be non-negative", domain.ErrInvalidInput, i)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", domain.ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateBookingTime проверяет минимальное время до начала для бронирования на сегодня
func validateBookingTime(policy domain.BookingPolicy, date time.Time, start types.TimeString, now time.Time) error {
	startMinutes, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if startMinutes < policy.EarliestStartMinutes(date, now) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", domain.ErrTooLateToBook, policy.MinBookingNoticeMinutes)
	}

	return nil
}

// validateWorkingHours проверяет, что [start, start+duration) лежит в часах работы мойки
func validateWorkingHours(shop *domain.Shop, start types.TimeString, duration int) error {
	startMinutes, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	open, err := shop.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: shop open time: %v", domain.ErrInternal, err)
	}
	closeAt, err := shop.CloseTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: shop close time: %v", domain.ErrInternal, err)
	}

	if startMinutes < open || startMinutes+duration > closeAt {
		return fmt.Errorf("%w: %s-%s, shop works %s-%s", domain.ErrOutsideWorkingHours,
			start, types.MinutesToTime(startMinutes+duration), shop.OpenTime, shop.CloseTime)
	}

	return nil
}

// totalPrice стоимость услуги вместе с дополнительными опциями
func totalPrice(service domain.Service, addOns []domain.AddOn) float64 {
	total := service.Price
	for _, addOn := range addOns {
		total += addOn.Price
	}
	return total
}
