package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotTaken возвращается при нарушении уникальности слота
	// (другая активная запись уже занимает это время у барбера)
	ErrSlotTaken = errors.New("slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("failed to build query")

	// ErrExecuteQuery возвращается при ошибке выполнения SQL запроса
	ErrExecuteQuery = errors.New("failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("failed to scan row")
)
