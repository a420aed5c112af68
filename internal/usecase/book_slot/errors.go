package book_slot

import (
	"errors"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/metrics"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_slot: slot not found")

	// ErrSlotAlreadyBooked возвращается, когда слот уже забронирован
	ErrSlotAlreadyBooked = errors.New("book_slot: slot already booked")

	// ErrSlotNotAvailable возвращается, когда слот отменен, истек или уже начался
	ErrSlotNotAvailable = errors.New("book_slot: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)

// Результаты попытки бронирования для метрик
const (
	resultBooked        = metrics.BookingResultBooked
	resultAlreadyBooked = metrics.BookingResultAlreadyBooked
	resultRejected      = metrics.BookingResultRejected
	resultFailed        = metrics.BookingResultFailed
)
