package reschedule_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_slot: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reschedule_slot: slot not found")

	// ErrInvalidTransition возвращается, когда слот отменен или истек
	ErrInvalidTransition = errors.New("reschedule_slot: slot cannot be rescheduled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_slot: internal error")
)
