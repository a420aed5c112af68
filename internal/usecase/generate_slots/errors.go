package generate_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrPanelTooLarge возвращается, когда интервьюеров больше допустимого
	ErrPanelTooLarge = errors.New("generate_slots: too many interviewers")

	// ErrRuleNotFound возвращается, когда указанное правило не найдено и у тенанта нет правила по умолчанию
	ErrRuleNotFound = errors.New("generate_slots: scheduling rule not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
