package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/domain"
	getAvailableSlots "github.com/strizhka/barbershop-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidShopID      = "некорректный ID барбершопа"
	msgInvalidBarberID    = "некорректный ID барбера"
	msgInvalidServiceID   = "некорректный параметр serviceId"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgShopNotFound       = "барбершоп не найден"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotProvided = "барбер не выполняет эту услугу"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/barbers/{barberId}/available-slots?serviceId={id}&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("GET /available-slots - Invalid shop ID: %v", vars["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	barberID, err := strconv.ParseInt(vars["barberId"], 10, 64)
	if err != nil || barberID <= 0 {
		h.logger.Warn("GET /available-slots - Invalid barber ID: %v", vars["barberId"])
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", r.URL.Query().Get("serviceId"))
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date: %v", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ShopID:    shopID,
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrShopNotFound):
			h.logger.Warn("GET /available-slots - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			h.logger.Warn("GET /available-slots - Barber not found: shop_id=%d, barber_id=%d", shopID, barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: shop_id=%d, service_id=%d", shopID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotProvidedByBarber):
			h.logger.Warn("GET /available-slots - Service not provided by barber: barber_id=%d, service_id=%d", barberID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Invalid booking date: shop_id=%d", shopID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far in future: shop_id=%d", shopID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidShopID)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: shop_id=%d, barber_id=%d, error=%v",
				shopID, barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Found %d slots: shop_id=%d, barber_id=%d, service_id=%d",
		len(result.Slots), shopID, barberID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
