package list_shop_configs

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
	msgUnauthorized  = "требуется аутентификация"
	msgInvalidShopID = "некорректный ID барбершопа"
	msgShopNotFound  = "барбершоп не найден"
	msgAccessDenied  = "операция доступна только менеджеру барбершопа"
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

// Handle GET /api/v1/shops/{shopId}/slots-configs
// Возвращает все уровни конфигурации барбершопа, доступно только менеджерам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("GET /shops/{id}/slots-configs - Invalid shop ID: %v", vars["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	result, err := h.service.GetShopConfigs(r.Context(), shopID, userID)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/slots-configs - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/slots-configs - Access denied: shop_id=%d, user_id=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /shops/{id}/slots-configs - Failed to get configs: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/slots-configs - Fetched %d configs: shop_id=%d", len(result.Configs), shopID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
