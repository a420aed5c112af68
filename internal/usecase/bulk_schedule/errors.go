package bulk_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bulk_schedule: invalid input data")

	// ErrLegacyFields возвращается, если переданы устаревшие поля strategy/scheduledTime
	ErrLegacyFields = errors.New("bulk_schedule: legacy fields strategy/scheduledTime are not supported, use mode/startTime")

	// ErrPanelTooLarge возвращается, когда интервьюеров больше допустимого
	ErrPanelTooLarge = errors.New("bulk_schedule: too many interviewers")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("bulk_schedule: internal error")
)
