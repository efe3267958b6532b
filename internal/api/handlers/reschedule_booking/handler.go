package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/api/middleware"
	rescheduleBooking "github.com/strizhka/barbershop-booking/internal/usecase/reschedule_booking"
)

const (
	msgUnauthorized        = "требуется аутентификация"
	msgInvalidBookingID    = "некорректный ID записи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgBookingNotFound     = "запись не найдена"
	msgAccessDenied        = "нет доступа к этой записи"
	msgNotReschedulable    = "запись нельзя перенести в текущем статусе"
	msgBarberNotFound      = "барбер не найден"
	msgInvalidBookingDate  = "некорректная дата переноса"
	msgBarberNotWorking    = "барбер не работает в выбранную дату"
	msgSlotConflict        = "новое время пересекается с другой записью"
	msgInvalidTimeSlot     = "услуга не помещается в рабочие часы барбера"
	msgTooLateToReschedule = "слишком поздно для переноса на это время"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rescheduleBooking.ErrBookingNotReschedulable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrBarberNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Barber not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid date: booking_id=%d, date=%s",
				bookingID, req.NewDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, rescheduleBooking.ErrBarberNotWorking):
			h.logger.Warn("POST /bookings/{id}/reschedule - Barber not working: booking_id=%d, date=%s",
				bookingID, req.NewDate)
			handlers.RespondBadRequest(w, msgBarberNotWorking)

		case errors.Is(err, rescheduleBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot conflict: booking_id=%d, time=%s",
				bookingID, req.NewTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid time slot: booking_id=%d, time=%s",
				bookingID, req.NewTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings/{id}/reschedule - Too late: booking_id=%d, time=%s",
				bookingID, req.NewTime)
			handlers.RespondBadRequest(w, msgTooLateToReschedule)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%d, date=%s, time=%s",
		bookingID, req.NewDate, req.NewTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
