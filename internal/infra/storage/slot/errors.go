package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyBooked возвращается, когда слот уже забронирован другим запросом
	ErrSlotAlreadyBooked = errors.New("slot.repository: slot already booked")

	// ErrStatusConflict возвращается, когда статус слота изменился между чтением и записью
	ErrStatusConflict = errors.New("slot.repository: slot status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
