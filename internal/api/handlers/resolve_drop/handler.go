package resolve_drop

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/strizhka/barbershop-booking/internal/api/handlers"
	"github.com/strizhka/barbershop-booking/internal/api/middleware"
	resolveDrop "github.com/strizhka/barbershop-booking/internal/usecase/resolve_drop"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidShopID      = "некорректный ID барбершопа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTargetDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBookingNotFound    = "запись не найдена"
	msgAccessDenied       = "запись не принадлежит этому барбершопу"
	msgInvalidDate        = "некорректная целевая дата"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ResolveDropUseCase
	logger  Logger
}

func NewHandler(useCase ResolveDropUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/agenda/resolve-drop
// Превращает пиксельную координату сброса в привязанное к сетке время
// и проверяет конфликты, ничего не сохраняя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("POST /agenda/resolve-drop - Invalid shop ID: %v", vars["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req ResolveDropRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agenda/resolve-drop - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(shopID)
	if err != nil {
		h.logger.Warn("POST /agenda/resolve-drop - Failed to parse target date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTargetDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveDrop.ErrBookingNotFound):
			h.logger.Warn("POST /agenda/resolve-drop - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, resolveDrop.ErrAccessDenied):
			h.logger.Warn("POST /agenda/resolve-drop - Access denied: booking_id=%d, shop_id=%d",
				req.BookingID, shopID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, resolveDrop.ErrInvalidDate):
			h.logger.Warn("POST /agenda/resolve-drop - Invalid target date: %s", req.TargetDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, resolveDrop.ErrInvalidInput):
			h.logger.Warn("POST /agenda/resolve-drop - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /agenda/resolve-drop - Failed to resolve drop: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agenda/resolve-drop - Resolved: booking_id=%d, time=%s, conflict=%t",
		result.BookingID, result.ResolvedTime, result.HasConflict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
