package domain

import "errors"

var (
	// ErrInvalidWorkingHours возвращается при некорректной записи рабочих часов
	ErrInvalidWorkingHours = errors.New("domain: invalid working hours")

	// ErrUnknownTimezone возвращается, когда IANA-зона не найдена
	ErrUnknownTimezone = errors.New("domain: unknown timezone")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса слота
	ErrInvalidTransition = errors.New("domain: invalid slot status transition")

	// ErrInvalidSchedulingMode возвращается при неизвестном режиме массового планирования
	ErrInvalidSchedulingMode = errors.New("domain: invalid scheduling mode")

	// ErrInvalidTimeOfDay возвращается при неизвестной части дня
	ErrInvalidTimeOfDay = errors.New("domain: invalid time of day")

	// ErrInvalidWeekday возвращается при неизвестном дне недели
	ErrInvalidWeekday = errors.New("domain: invalid weekday")
)
