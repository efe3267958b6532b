package delete_shop_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/api/middleware"
	configService "github.com/strizhka/barbershop-booking/internal/service/config"
	"github.com/strizhka/barbershop-booking/internal/service/config/models"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgInvalidShopID   = "некорректный ID барбершопа"
	msgInvalidConfigID = "некорректный ID конфигурации"
	msgConfigNotFound  = "конфигурация не найдена"
	msgShopNotFound    = "барбершоп не найден"
	msgAccessDenied    = "операция доступна только менеджеру барбершопа"
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

// Handle DELETE /api/v1/shops/{shopId}/slots-configs/{configId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("DELETE /shops/{id}/slots-configs/{id} - Invalid shop ID: %v", vars["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	configID, err := strconv.ParseInt(vars["configId"], 10, 64)
	if err != nil || configID <= 0 {
		h.logger.Warn("DELETE /shops/{id}/slots-configs/{id} - Invalid config ID: %v", vars["configId"])
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteConfigRequest{
		UserID:   userID,
		ShopID:   shopID,
		ConfigID: configID,
	})
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrConfigNotFound):
			h.logger.Warn("DELETE /shops/{id}/slots-configs/{id} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, configService.ErrShopNotFound):
			h.logger.Warn("DELETE /shops/{id}/slots-configs/{id} - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("DELETE /shops/{id}/slots-configs/{id} - Access denied: shop_id=%d, user_id=%d",
				shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /shops/{id}/slots-configs/{id} - Failed to delete config: config_id=%d, error=%v",
				configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /shops/{id}/slots-configs/{id} - Config deleted: config_id=%d, shop_id=%d",
		configID, shopID)
	handlers.RespondNoContent(w)
}
