package get_client_bookings

import (
	"net/http"
	"strconv"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/api/middleware"
	"github.com/strizhka/barbershop-booking/internal/service/bookings/models"
)

const (
	msgUnauthorized = "требуется аутентификация"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?includeInactive=true
// Возвращает историю записей аутентифицированного клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))

	result, err := h.service.GetClientBookings(r.Context(), &models.GetClientBookingsRequest{
		ClientID:        clientID,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		h.logger.Error("GET /bookings - Failed to get client bookings: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Fetched %d bookings: client_id=%d", len(result.Bookings), clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
