package create_booking

import "errors"

var (
	// ErrShopNotFound возвращается, когда барбершоп не найден
	ErrShopNotFound = errors.New("create_booking: shop not found")

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("create_booking: barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotProvidedByBarber возвращается, когда барбер не выполняет эту услугу
	ErrServiceNotProvidedByBarber = errors.New("create_booking: service is not provided by this barber")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrBarberNotWorking возвращается, когда барбер не работает в указанную дату
	ErrBarberNotWorking = errors.New("create_booking: barber does not work on this date")

	// ErrSlotConflict возвращается, когда выбранное время пересекается с другой записью
	ErrSlotConflict = errors.New("create_booking: slot conflicts with another booking")

	// ErrInvalidTimeSlot возвращается, когда время не выровнено по сетке
	// или услуга не помещается в рабочие часы барбера
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается при нарушении minLeadTimeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
