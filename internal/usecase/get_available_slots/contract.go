package get_available_slots

import (
	"context"
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, shopID int64, barberID, serviceID *int64) (*domain.ShopSlotsConfig, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetBarber(ctx context.Context, shopID, barberID int64) (*staffservice.Barber, error)
	GetService(ctx context.Context, shopID, serviceID int64) (*staffservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на основе системных часов
type RealTimeProvider struct{}

// Now возвращает текущее системное время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
