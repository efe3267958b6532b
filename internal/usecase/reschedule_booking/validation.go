package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if req.NewTime.IsZero() {
		return fmt.Errorf("%w: newTime is required", ErrInvalidInput)
	}

	if err := req.NewTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSlotFitsWorkingHours проверяет, что услуга помещается в рабочие часы барбера
func validateSlotFitsWorkingHours(
	startTime types.TimeString,
	durationMinutes int,
	workingHours staffservice.DaySchedule,
) error {
	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return ErrBarberNotWorking
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(openTime) {
		return fmt.Errorf("%w: starts before opening", ErrInvalidTimeSlot)
	}

	serviceEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: service end out of range", ErrInvalidTimeSlot)
	}

	if serviceEnd.IsAfter(closeTime) {
		return fmt.Errorf("%w: ends after closing", ErrInvalidTimeSlot)
	}

	return nil
}

// validateLeadTime проверяет, что новое время не нарушает minLeadTimeMinutes
func validateLeadTime(
	newDate time.Time,
	newTime types.TimeString,
	now time.Time,
	minLeadTimeMinutes int,
) error {
	if !isSameDay(newDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minLeadTimeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if newTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minLeadTimeMinutes)
	}

	return nil
}

// hasConflictingBooking проверяет пересечение нового интервала с активными записями барбера
// Переносимая запись исключается из проверки: пересечение с самой собой не конфликт
func hasConflictingBooking(
	newTime types.TimeString,
	durationMinutes int,
	bookings []domain.Booking,
	excludeBookingID int64,
) (bool, error) {
	newEnd, err := newTime.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, booking := range bookings {
		if booking.ID == excludeBookingID {
			continue
		}

		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		// Граничащие интервалы пересечением не считаются
		if bookingStart.IsBefore(newEnd) && bookingEnd.IsAfter(newTime) {
			return true, nil
		}
	}

	return false, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
