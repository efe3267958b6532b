package get_shop_agenda

import (
	"context"

	"github.com/strizhka/barbershop-booking/internal/service/bookings/models"
)

type BookingService interface {
	GetShopAgenda(ctx context.Context, req *models.GetShopAgendaRequest) (*models.AgendaResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
