package list_shop_configs

import (
	"context"

	"github.com/strizhka/barbershop-booking/internal/service/config/models"
)

type ConfigService interface {
	GetShopConfigs(ctx context.Context, shopID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
