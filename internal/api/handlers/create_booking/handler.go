package create_booking

import (
	"errors"
	"net/http"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/api/middleware"
	createBooking "github.com/strizhka/barbershop-booking/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgShopNotFound       = "барбершоп не найден"
	msgBarberNotFound     = "барбер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceNotProvided = "барбер не выполняет эту услугу"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgBarberNotWorking   = "барбер не работает в выбранную дату"
	msgSlotConflict       = "выбранный временной слот уже занят"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrShopNotFound):
			h.logger.Warn("POST /bookings - Shop not found: shop_id=%d", req.ShopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, createBooking.ErrBarberNotFound):
			h.logger.Warn("POST /bookings - Barber not found: shop_id=%d, barber_id=%d", req.ShopID, req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: shop_id=%d, service_id=%d", req.ShopID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotProvidedByBarber):
			h.logger.Warn("POST /bookings - Service not provided by barber: barber_id=%d, service_id=%d",
				req.BarberID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d, shop_id=%d", clientID, req.ShopID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: client_id=%d, shop_id=%d", clientID, req.ShopID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrBarberNotWorking):
			h.logger.Warn("POST /bookings - Barber not working: barber_id=%d, date=%s", req.BarberID, req.BookingDate)
			handlers.RespondBadRequest(w, msgBarberNotWorking)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: barber_id=%d, date=%s, time=%s",
				req.BarberID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: barber_id=%d, time=%s", req.BarberID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, shop_id=%d, error=%v",
				clientID, req.ShopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, shop_id=%d",
		result.ID, clientID, req.ShopID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
