package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/types"
)

// WeeklyPattern одно повторяющееся окно рабочего времени в день недели.
// Окон на один день может быть несколько (разделенная смена), порядок не гарантируется
type WeeklyPattern struct {
	DayOfWeek time.Weekday     `json:"dayOfWeek"` // 0 = воскресенье
	Start     types.TimeString `json:"start"`
	End       types.TimeString `json:"end"` // "24:00" = до конца суток
}

// Validate проверяет день недели и порядок времени
func (p WeeklyPattern) Validate() error {
	if p.DayOfWeek < time.Sunday || p.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: dayOfWeek %d out of range 0..6", ErrInvalidWorkingHours, p.DayOfWeek)
	}
	if err := p.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWorkingHours, err)
	}
	if err := p.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWorkingHours, err)
	}
	if !p.Start.IsBefore(p.End) {
		return fmt.Errorf("%w: window %s-%s is empty or inverted", ErrInvalidWorkingHours, p.Start, p.End)
	}
	return nil
}

// WeeklyPatterns недельное расписание, хранится в JSONB
type WeeklyPatterns []WeeklyPattern

// Value реализует driver.Valuer
func (w WeeklyPatterns) Value() (driver.Value, error) {
	if w == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(w)
}

// Scan реализует sql.Scanner
func (w *WeeklyPatterns) Scan(src interface{}) error {
	return scanJSON(src, w)
}

// WorkingHours рабочие часы пользователя.
// Запись заменяется целиком при обновлении. EffectiveFrom/EffectiveTo - календарные даты
// в зоне записи, обе границы включительно. nil означает отсутствие ограничения
type WorkingHours struct {
	ID            string
	TenantID      string
	UserID        string
	Weekly        WeeklyPatterns
	Timezone      string
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Location загружает IANA-зону записи
func (w *WorkingHours) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, w.Timezone)
	}
	return loc, nil
}

// Validate проверяет зону, окна и порядок дат действия
func (w *WorkingHours) Validate() error {
	if w.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidWorkingHours)
	}
	if _, err := w.Location(); err != nil {
		return err
	}
	for i, p := range w.Weekly {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("weekly[%d]: %w", i, err)
		}
	}
	if w.EffectiveFrom != nil && w.EffectiveTo != nil && w.EffectiveTo.Before(*w.EffectiveFrom) {
		return fmt.Errorf("%w: effectiveTo is before effectiveFrom", ErrInvalidWorkingHours)
	}
	return nil
}

// PatternsFor возвращает окна на указанный день недели
func (w *WorkingHours) PatternsFor(day time.Weekday) []WeeklyPattern {
	out := make([]WeeklyPattern, 0, 2)
	for _, p := range w.Weekly {
		if p.DayOfWeek == day {
			out = append(out, p)
		}
	}
	return out
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("domain: unsupported JSON scan type %T", src)
	}
}
