package get_suggestions

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_suggestions: invalid input data")

	// ErrPanelTooLarge возвращается, когда участников больше допустимого
	ErrPanelTooLarge = errors.New("get_suggestions: too many participants")

	// ErrRuleNotFound возвращается, когда указанное правило не найдено
	ErrRuleNotFound = errors.New("get_suggestions: scheduling rule not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_suggestions: internal error")
)
