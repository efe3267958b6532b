package reschedule_booking

import (
	"time"

	"github.com/strizhka/barbershop-booking/pkg/types"
)

// Request модель запроса на перенос записи
// Перенести запись может ее владелец или менеджер барбершопа
type Request struct {
	BookingID int64            // ID переносимой записи
	ClientID  int64            // ID пользователя, выполняющего перенос
	NewDate   time.Time        // Новая дата (без времени)
	NewTime   types.TimeString // Новое время начала
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID              int64            // ID записи
	ClientID        int64            // ID клиента
	ShopID          int64            // ID барбершопа
	BarberID        int64            // ID барбера
	ServiceID       int64            // ID услуги
	BookingDate     time.Time        // Новая дата записи
	StartTime       types.TimeString // Новое время начала
	DurationMinutes int              // Длительность услуги
	Status          string           // Статус записи
	ServiceName     string           // Название услуги
	BarberName      string           // Имя барбера
	UpdatedAt       time.Time        // Время обновления
}
