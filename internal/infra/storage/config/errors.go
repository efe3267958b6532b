package config

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация не найдена
	ErrConfigNotFound = errors.New("slots config not found")

	// ErrConfigAlreadyExists возвращается при попытке создать дубликат конфигурации
	ErrConfigAlreadyExists = errors.New("slots config already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("failed to build query")

	// ErrExecuteQuery возвращается при ошибке выполнения SQL запроса
	ErrExecuteQuery = errors.New("failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("failed to scan row")
)
