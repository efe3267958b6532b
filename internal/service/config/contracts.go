package config

import (
	"context"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
)

// ConfigRepository интерфейс репозитория конфигурации слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, shopID int64, barberID, serviceID *int64) (*domain.ShopSlotsConfig, error)
	GetByShopID(ctx context.Context, shopID int64) ([]domain.ShopSlotsConfig, error)
	Upsert(ctx context.Context, cfg *domain.ShopSlotsConfig) (*domain.ShopSlotsConfig, error)
	Delete(ctx context.Context, configID int64) error
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetShop(ctx context.Context, shopID int64) (*staffservice.Shop, error)
	GetBarber(ctx context.Context, shopID, barberID int64) (*staffservice.Barber, error)
	GetService(ctx context.Context, shopID, serviceID int64) (*staffservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
