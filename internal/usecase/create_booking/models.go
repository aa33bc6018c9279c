package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarWash/internal/domain"
	"github.com/m04kA/SMC-CarWash/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64                  // ID клиента (из актора)
	ShopID    string                 // ID мойки
	ServiceID string                 // ID услуги из каталога мойки
	Date      time.Time              // Дата бронирования (без времени)
	StartTime types.TimeString       // Время начала, например "10:00"
	AddOns    []domain.AddOn         // Дополнительные опции
	Vehicle   domain.VehicleSnapshot // Автомобиль из запроса, используется если UserService недоступен
	Notes     *string                // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
