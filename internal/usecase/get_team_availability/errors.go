package get_team_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_team_availability: invalid input data")

	// ErrPanelTooLarge возвращается, когда пользователей больше допустимого
	ErrPanelTooLarge = errors.New("get_team_availability: too many users")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_team_availability: internal error")
)
