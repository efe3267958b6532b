package get_shop_agenda

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/api/middleware"
	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/service/bookings"
	"github.com/strizhka/barbershop-booking/internal/service/bookings/models"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgInvalidShopID   = "некорректный ID барбершопа"
	msgInvalidBarberID = "некорректный параметр barberId"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgShopNotFound    = "барбершоп не найден"
	msgAccessDenied    = "операция доступна только менеджеру барбершопа"
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

// Handle GET /api/v1/shops/{shopId}/agenda?date=YYYY-MM-DD&barberId={id}&pixelsPerHour={px}
// Возвращает дневную сетку записей с геометрией для отрисовки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("GET /shops/{id}/agenda - Invalid shop ID: %v", vars["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /shops/{id}/agenda - Invalid date: %v", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.GetShopAgendaRequest{
		UserID: userID,
		ShopID: shopID,
		Date:   date,
	}

	if barberIDStr := r.URL.Query().Get("barberId"); barberIDStr != "" {
		barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
		if err != nil || barberID <= 0 {
			h.logger.Warn("GET /shops/{id}/agenda - Invalid barber ID: %v", barberIDStr)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		req.BarberID = &barberID
	}

	if pphStr := r.URL.Query().Get("pixelsPerHour"); pphStr != "" {
		if pph, err := strconv.Atoi(pphStr); err == nil {
			req.PixelsPerHour = pph
		}
	}

	result, err := h.service.GetShopAgenda(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/agenda - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/agenda - Access denied: shop_id=%d, user_id=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /shops/{id}/agenda - Failed to get agenda: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/agenda - Agenda built with %d entries: shop_id=%d, date=%s",
		len(result.Entries), shopID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
