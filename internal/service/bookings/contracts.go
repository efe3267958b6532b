package bookings

import (
	"context"
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, includeInactive bool) ([]domain.Booking, error)
	GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID int64, status domain.BookingStatus, reason *string) (*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, shopID int64, barberID, serviceID *int64) (*domain.ShopSlotsConfig, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetShop(ctx context.Context, shopID int64) (*staffservice.Shop, error)
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
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
