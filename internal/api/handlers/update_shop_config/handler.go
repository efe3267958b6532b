package update_shop_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/api/middleware"
	configService "github.com/strizhka/barbershop-booking/internal/service/config"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidShopID      = "некорректный ID барбершопа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректные параметры конфигурации"
	msgShopNotFound       = "барбершоп не найден"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgAccessDenied       = "операция доступна только менеджеру барбершопа"
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

// Handle PUT /api/v1/shops/{shopId}/slots-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("PUT /shops/{id}/slots-config - Invalid shop ID: %v", vars["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{id}/slots-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(shopID, userID))
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /shops/{id}/slots-config - Invalid config: shop_id=%d, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, configService.ErrShopNotFound):
			h.logger.Warn("PUT /shops/{id}/slots-config - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, configService.ErrBarberNotFound):
			h.logger.Warn("PUT /shops/{id}/slots-config - Barber not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, configService.ErrServiceNotFound):
			h.logger.Warn("PUT /shops/{id}/slots-config - Service not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /shops/{id}/slots-config - Access denied: shop_id=%d, user_id=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /shops/{id}/slots-config - Failed to save config: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{id}/slots-config - Config saved: config_id=%d, shop_id=%d", result.ID, shopID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
