package get_available_slots

import (
	"time"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/pkg/types"
)

// generateCandidateStarts генерирует все кандидатные времена начала услуги на день
// Кандидаты идут от открытия с фиксированным шагом granularityMinutes,
// конец услуги (start + serviceDuration) не должен выходить за время закрытия
// Для сегодняшней даты кандидаты дополнительно фильтруются по minLeadTimeMinutes
func generateCandidateStarts(
	workingHours staffservice.DaySchedule,
	granularityMinutes int,
	serviceDurationMinutes int,
	requestDate time.Time,
	now time.Time,
	minLeadTimeMinutes int,
) ([]types.TimeString, error) {
	// Дата в прошлом - слотов нет
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Барбер не работает в этот день
	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return []types.TimeString{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return nil, err
	}

	// Шаг 1: Генерируем ВСЕ кандидаты от открытия до закрытия с шагом granularityMinutes
	// Шаг сетки не зависит от длительности услуги: услуга на 45 минут
	// может начинаться в 10:00, 10:10, 10:20 при шаге в 10 минут
	allStarts := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		serviceEnd, err := current.AddMinutes(serviceDurationMinutes)
		if err != nil {
			break
		}

		// Услуга должна закончиться не позже закрытия
		if serviceEnd.IsAfter(closeTime) {
			break
		}

		allStarts = append(allStarts, current)

		current, err = current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
	}

	// Шаг 2: Если дата НЕ сегодня - возвращаем всех кандидатов
	if !isSameDay(requestDate, now) {
		return allStarts, nil
	}

	// Шаг 3: Для сегодняшней даты отбрасываем кандидатов раньше now + minLeadTime
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minLeadTimeMinutes)
	if err != nil {
		return nil, err
	}

	availableStarts := make([]types.TimeString, 0)
	for _, start := range allStarts {
		if !start.IsBefore(minAllowedTime) {
			availableStarts = append(availableStarts, start)
		}
	}

	return availableStarts, nil
}

// filterFreeSlots оставляет только кандидатов, не пересекающихся с активными записями барбера
// У барбера одно кресло: любое пересечение делает кандидата недоступным
func filterFreeSlots(
	starts []types.TimeString,
	serviceDurationMinutes int,
	bookings []domain.Booking,
) []domain.CandidateSlot {
	result := make([]domain.CandidateSlot, 0, len(starts))

	for _, start := range starts {
		end, err := start.AddMinutes(serviceDurationMinutes)
		if err != nil {
			continue
		}

		candidate := domain.CandidateSlot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: serviceDurationMinutes,
		}

		if hasOverlappingBooking(&candidate, bookings) {
			continue
		}

		result = append(result, candidate)
	}

	return result
}

// hasOverlappingBooking проверяет, пересекается ли кандидат
// хотя бы с одной активной записью
//
// Примеры:
// - Слот 11:30-12:15, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:15, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:15, запись 12:15-12:45 → НЕТ пересечения (граничат)
func hasOverlappingBooking(candidate *domain.CandidateSlot, bookings []domain.Booking) bool {
	for _, booking := range bookings {
		// Пропускаем неактивные записи
		if !booking.IsActive() {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if candidate.Overlaps(booking.StartTime, bookingEnd) {
			return true
		}
	}

	return false
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
