package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается при попытке перенести чужую запись
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrBookingNotReschedulable возвращается, когда запись нельзя перенести
	// (завершена, отменена или клиент не пришел)
	ErrBookingNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("reschedule_booking: barber not found")

	// ErrInvalidDate возвращается при некорректной новой дате
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrBarberNotWorking возвращается, когда барбер не работает в новую дату
	ErrBarberNotWorking = errors.New("reschedule_booking: barber does not work on this date")

	// ErrSlotConflict возвращается, когда новое время пересекается с другой записью
	ErrSlotConflict = errors.New("reschedule_booking: slot conflicts with another booking")

	// ErrInvalidTimeSlot возвращается, когда новое время не помещается в рабочие часы
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrTooLateToBook возвращается при нарушении minLeadTimeMinutes
	ErrTooLateToBook = errors.New("reschedule_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
