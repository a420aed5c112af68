package calendar

import "errors"

var (
	// ErrWorkingHoursNotFound возвращается, когда у пользователя нет рабочих часов
	ErrWorkingHoursNotFound = errors.New("working hours not found")

	// ErrBusyBlockNotFound возвращается, когда блок занятости не найден
	ErrBusyBlockNotFound = errors.New("busy block not found")

	// ErrManagedBlock возвращается при попытке изменить блок, зеркалирующий интервью
	ErrManagedBlock = errors.New("busy block is managed by an interview")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
