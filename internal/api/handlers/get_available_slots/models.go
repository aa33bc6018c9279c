package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CarWash/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date             string          `json:"date"`
	ShopID           string          `json:"shopId"`
	ServiceID        string          `json:"serviceId"`
	DurationMinutes  int             `json:"durationMinutes"`
	ImmediatePayment bool            `json:"immediatePayment"`
	Slots            []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		Date:             resp.Date.Format(domain.DateFormat),
		ShopID:           resp.ShopID,
		ServiceID:        resp.ServiceID,
		DurationMinutes:  resp.DurationMinutes,
		ImmediatePayment: resp.ImmediatePayment,
		Slots:            slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(shopID, serviceID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ShopID:    shopID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
