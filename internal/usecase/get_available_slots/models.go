package get_available_slots

import (
	"time"

	"github.com/strizhka/barbershop-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID    int64     // ID барбершопа
	BarberID  int64     // ID барбера
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
// Пустой список слотов - корректный ответ, а не ошибка
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	ShopID    int64     // ID барбершопа
	BarberID  int64     // ID барбера
	ServiceID int64     // ID услуги
	Slots     []Slot    // Список доступных слотов
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания услуги
	DurationMinutes int              // Длительность услуги в минутах
}
