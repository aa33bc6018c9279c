package get_shop_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
)

// ToFilter формирует фильтр из query параметров.
// date задаёт один день и имеет приоритет над from/to.
func ToFilter(shopID string, q url.Values) (domain.ShopBookingsFilter, error) {
	filter := domain.ShopBookingsFilter{
		ShopID:          shopID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if dateStr := q.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return filter, fmt.Errorf("invalid date: %w", err)
		}
		filter.From = &date
		filter.To = &date
	} else {
		if fromStr := q.Get("from"); fromStr != "" {
			from, err := time.Parse(domain.DateFormat, fromStr)
			if err != nil {
				return filter, fmt.Errorf("invalid from: %w", err)
			}
			filter.From = &from
		}
		if toStr := q.Get("to"); toStr != "" {
			to, err := time.Parse(domain.DateFormat, toStr)
			if err != nil {
				return filter, fmt.Errorf("invalid to: %w", err)
			}
			filter.To = &to
		}
	}

	if statusStr := q.Get("status"); statusStr != "" {
		status, err := domain.ParseBookingStatus(statusStr)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if includeInactiveStr := q.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return filter, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		filter.IncludeInactive = includeInactive
	}

	return filter, nil
}
