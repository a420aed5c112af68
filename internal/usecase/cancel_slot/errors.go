package cancel_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_slot: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("cancel_slot: slot not found")

	// ErrInvalidTransition возвращается, когда слот не забронирован
	ErrInvalidTransition = errors.New("cancel_slot: only booked slots can be cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_slot: internal error")
)
