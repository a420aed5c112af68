package scheduling

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// BusySource происхождение записи о занятости
type BusySource string

const (
	BusySourceWorkingHours        BusySource = "working_hours"
	BusySourceUnknownAvailability BusySource = "unknown_availability"
	BusySourceManual              BusySource = BusySource(domain.BusySourceManual)
	BusySourceCalendarSync        BusySource = BusySource(domain.BusySourceCalendarSync)
	BusySourceInterview           BusySource = BusySource(domain.BusySourceInterview)
)

// WarningUnknownAvailability код предупреждения для пользователя без рабочих часов
const WarningUnknownAvailability = "UNKNOWN_AVAILABILITY"

// BusyEntry размеченный интервал занятости.
// Interval хранит исходные границы события, без обрезки по диапазону запроса
type BusyEntry struct {
	Interval interval.Interval `json:"interval"`
	Source   BusySource        `json:"source"`
	SourceID string            `json:"sourceId,omitempty"`
	Label    string            `json:"label,omitempty"`
}

// BusySet агрегированная занятость пользователя в диапазоне
type BusySet struct {
	UserID              string              `json:"userId"`
	Range               interval.Interval   `json:"range"`
	Entries             []BusyEntry         `json:"entries"`
	Intervals           []interval.Interval `json:"intervals"` // склеенные и обрезанные по Range
	UnknownAvailability bool                `json:"unknownAvailability"`
}

// Warning предупреждение, не прерывающее вычисление
type Warning struct {
	UserID  string
	Code    string
	Message string
}

// UserAvailability свободное время пользователя
type UserAvailability struct {
	UserID              string
	Free                []interval.Interval
	Busy                *BusySet
	UnknownAvailability bool
}

// AvailabilityResult свободное время панели.
// Combined - пересечение свободного времени всех пользователей (для одного пользователя совпадает с его Free)
type AvailabilityResult struct {
	Range    interval.Interval
	Users    []UserAvailability
	Combined []interval.Interval
	Warnings []Warning
}

// Conflict пересечение предлагаемого времени с занятостью участника
type Conflict struct {
	UserID   string
	Interval interval.Interval // границы конфликтующего события
	Overlap  interval.Interval // пересечение с предлагаемым временем
	Source   BusySource
	SourceID string
	Label    string
}

// SlotParams параметры нарезки слотов
type SlotParams struct {
	Duration time.Duration
	Rule     *domain.SchedulingRule
	Now      time.Time
}

// Suggestion ранжированный вариант времени интервью
type Suggestion struct {
	Interval         interval.Interval
	Score            int
	Reasons          []string
	UserAvailability map[string]bool
}

// RankInput входные данные ранжирования
type RankInput struct {
	UserIDs     []string
	Preferences domain.SlotPreferences
	// Location зона, в которой оцениваются час и день недели слота
	Location *time.Location
	// Commitments зафиксированные интервью любого участника панели
	Commitments []interval.Interval
	// CandidateInterviews другие интервью кандидата. Учитываются только при HasCandidate
	CandidateInterviews []interval.Interval
	HasCandidate        bool
	MaxSuggestions      int
	// UserFree свободное время каждого участника. Без записи участник считается доступным
	UserFree map[string][]interval.Interval
}
