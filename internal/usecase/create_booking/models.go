package create_booking

import (
	"time"

	"github.com/strizhka/barbershop-booking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64            // ID клиента
	ShopID    int64            // ID барбершопа
	BarberID  int64            // ID барбера
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала (например, "10:00")
	Notes     *string          // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	ClientID        int64            // ID клиента
	ShopID          int64            // ID барбершопа
	BarberID        int64            // ID барбера
	ServiceID       int64            // ID услуги
	BookingDate     time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность услуги в минутах
	Status          string           // Статус записи

	// Денормализованные данные на момент создания
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	BarberName   string  // Отображаемое имя барбера
	Notes        *string // Пожелания клиента

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
