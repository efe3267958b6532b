package delete_shop_config

import (
	"context"

	"github.com/strizhka/barbershop-booking/internal/service/config/models"
)

type ConfigService interface {
	Delete(ctx context.Context, req *models.DeleteConfigRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
