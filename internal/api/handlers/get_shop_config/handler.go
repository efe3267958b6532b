package get_shop_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/service/config/models"
)

const (
	msgInvalidShopID    = "некорректный ID барбершопа"
	msgInvalidBarberID  = "некорректный параметр barberId"
	msgInvalidServiceID = "некорректный параметр serviceId"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/slots-config?barberId={id}&serviceId={id}
// Публичный эндпоинт: возвращает эффективную конфигурацию слотов
// с учетом иерархии приоритетов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("GET /shops/{id}/slots-config - Invalid shop ID: %v", vars["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	req := &models.GetConfigRequest{ShopID: shopID}

	if barberIDStr := r.URL.Query().Get("barberId"); barberIDStr != "" {
		barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil || barberID <= 0 {
			h.logger.Warn("GET /shops/{id}/slots-config - Invalid barber ID: %v", barberIDStr)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		req.BarberID = &barberID
	}

	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil || serviceID <= 0 {
			h.logger.Warn("GET /shops/{id}/slots-config - Invalid service ID: %v", serviceIDStr)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	result, err := h.service.GetEffective(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /shops/{id}/slots-config - Failed to get config: shop_id=%d, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shops/{id}/slots-config - Config fetched: shop_id=%d", shopID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
