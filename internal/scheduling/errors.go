package scheduling

import "errors"

var (
	// ErrInvalidSourceData возвращается, когда источник вернул некорректный интервал
	ErrInvalidSourceData = errors.New("scheduling: invalid data from source")

	// ErrFetchWorkingHours возвращается при ошибке получения рабочих часов
	ErrFetchWorkingHours = errors.New("scheduling: failed to fetch working hours")

	// ErrFetchBusyBlocks возвращается при ошибке получения блоков занятости
	ErrFetchBusyBlocks = errors.New("scheduling: failed to fetch busy blocks")

	// ErrFetchInterviews возвращается при ошибке получения интервью
	ErrFetchInterviews = errors.New("scheduling: failed to fetch interviews")

	// ErrEmptyPanel возвращается, если не передано ни одного пользователя
	ErrEmptyPanel = errors.New("scheduling: panel is empty")
)
