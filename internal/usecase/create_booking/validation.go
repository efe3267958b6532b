package create_booking

import (
	"fmt"
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что запись не нарушает minLeadTimeMinutes
func validateBookingTime(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minLeadTimeMinutes int,
) error {
	// Для будущих дат проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minLeadTimeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minLeadTimeMinutes)
	}

	return nil
}

// validateSlotFitsWorkingHours проверяет, что услуга целиком помещается
// в рабочие часы барбера и время начала выровнено по сетке слотов
func validateSlotFitsWorkingHours(
	startTime types.TimeString,
	serviceDurationMinutes int,
	workingHours staffservice.DaySchedule,
	granularityMinutes int,
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

	serviceEnd, err := startTime.AddMinutes(serviceDurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: service end out of range", ErrInvalidTimeSlot)
	}

	if serviceEnd.IsAfter(closeTime) {
		return fmt.Errorf("%w: ends after closing", ErrInvalidTimeSlot)
	}

	// Старт должен попадать на сетку кандидатов: open + k*granularity
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInternal, err)
	}

	openMinutes, err := openTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}

	if granularityMinutes > 0 && (startMinutes-openMinutes)%granularityMinutes != 0 {
		return fmt.Errorf("%w: not aligned to %d-minute grid", ErrInvalidTimeSlot, granularityMinutes)
	}

	return nil
}

// validateServiceByBarber проверяет, что барбер выполняет услугу
func validateServiceByBarber(service *staffservice.Service, barberID int64) error {
	for _, id := range service.BarberIDs {
		if id == barberID {
			return nil
		}
	}

	return ErrServiceNotProvidedByBarber
}

// hasOverlappingBooking проверяет, пересекается ли интервал записи
// хотя бы с одной активной записью барбера
// Граничащие интервалы пересечением не считаются
func hasOverlappingBooking(
	startTime types.TimeString,
	durationMinutes int,
	bookings []domain.Booking,
) (bool, error) {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(startTime) {
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
