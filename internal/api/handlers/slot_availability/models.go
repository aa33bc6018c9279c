package slot_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	ShopID          string `json:"shopId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

type query struct {
	date     time.Time
	start    types.TimeString
	duration int
}

func parseQuery(dateStr, timeStr, durationStr string) (*query, string) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, msgInvalidDate
	}

	start, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, msgInvalidTime
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration <= 0 {
		return nil, msgInvalidDuration
	}

	return &query{date: date, start: start, duration: duration}, ""
}
