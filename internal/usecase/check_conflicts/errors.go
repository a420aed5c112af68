package check_conflicts

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_conflicts: invalid input data")

	// ErrPanelTooLarge возвращается, когда участников больше допустимого
	ErrPanelTooLarge = errors.New("check_conflicts: too many participants")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflicts: internal error")
)
