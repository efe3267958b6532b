package resolve_drop

import "errors"

var (
	// ErrBookingNotFound возвращается, когда перетаскиваемая запись не найдена
	ErrBookingNotFound = errors.New("resolve_drop: booking not found")

	// ErrAccessDenied возвращается при попытке перетащить запись чужого барбершопа
	ErrAccessDenied = errors.New("resolve_drop: access denied")

	// ErrInvalidDate возвращается при некорректной целевой дате
	ErrInvalidDate = errors.New("resolve_drop: invalid target date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_drop: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_drop: internal error")
)
