package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay предпочитаемая часть дня
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"   // до 12:00
	TimeOfDayAfternoon TimeOfDay = "afternoon" // 12:00-17:00
	TimeOfDayEvening   TimeOfDay = "evening"   // с 17:00
	TimeOfDayAny       TimeOfDay = "any"
)

// ParseTimeOfDay разбирает часть дня, пустая строка означает any
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch t := TimeOfDay(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TimeOfDayAny, nil
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening, TimeOfDayAny:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
}

// Matches сообщает, попадает ли локальный час в часть дня. any ничему не соответствует:
// отсутствие предпочтения не дает бонуса
func (t TimeOfDay) Matches(hour int) bool {
	switch t {
	case TimeOfDayMorning:
		return hour < AfternoonStartHour
	case TimeOfDayAfternoon:
		return hour >= AfternoonStartHour && hour < EveningStartHour
	case TimeOfDayEvening:
		return hour >= EveningStartHour
	default:
		return false
	}
}

// SlotPreferences предпочтения для ранжирования предложений
type SlotPreferences struct {
	PreferredTimeOfDay          TimeOfDay
	PreferredDays               []time.Weekday
	AvoidBackToBack             bool
	MinGapBetweenInterviewsMins int
}

// PrefersDay сообщает, входит ли день недели в предпочтительные
func (p SlotPreferences) PrefersDay(day time.Weekday) bool {
	for _, d := range p.PreferredDays {
		if d == day {
			return true
		}
	}
	return false
}

// WeekdayFromIndex переводит номер дня недели (0 = воскресенье .. 6 = суббота)
func WeekdayFromIndex(n int) (time.Weekday, error) {
	if n < int(time.Sunday) || n > int(time.Saturday) {
		return 0, fmt.Errorf("%w: %d out of range 0..6", ErrInvalidWeekday, n)
	}
	return time.Weekday(n), nil
}

// SchedulingMode режим массового планирования
type SchedulingMode string

const (
	// SchedulingModeSequential одно интервью на кандидата, время сдвигается на длительность
	SchedulingModeSequential SchedulingMode = "SEQUENTIAL"
	// SchedulingModeGroup все кандидаты в одно и то же время
	SchedulingModeGroup SchedulingMode = "GROUP"
)

// ParseSchedulingMode разбирает режим. Пустое значение недопустимо: режим выбирается явно
func ParseSchedulingMode(s string) (SchedulingMode, error) {
	switch m := SchedulingMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case SchedulingModeSequential, SchedulingModeGroup:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSchedulingMode, s)
	}
}
