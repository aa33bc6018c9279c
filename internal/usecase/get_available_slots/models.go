package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID    string    // ID мойки
	ServiceID string    // ID услуги, длительность слота берётся из неё
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date             time.Time // Дата, на которую запрашивались слоты
	ShopID           string
	ServiceID        string
	DurationMinutes  int
	ImmediatePayment bool   // Бронирование на сегодня оплачивается сразу
	Slots            []Slot // Свободные слоты по возрастанию времени
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
