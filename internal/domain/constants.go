package domain

import "time"

// Встроенное правило планирования, если у тенанта нет правила по умолчанию
const (
	DefaultMinNoticeMins    = 60 // 1 hour
	DefaultBufferBeforeMins = 0
	DefaultBufferAfterMins  = 0
	DefaultSlotMins         = 60
	DefaultRuleName         = "built-in default"
)

// Business validation constants
const (
	MinDurationMins       = 15
	MaxDurationMins       = 480 // 8 hours
	MaxNoticeMins         = 10080
	MaxBufferMins         = 240
	MaxRuleNameLength     = 100
	MaxReasonLength       = 500
	MaxQueryRangeDays     = 62
	DefaultMaxSuggestions = 10
	MaxSuggestionsLimit   = 50
	DefaultPerPage        = 20
	MaxPerPage            = 100

	DefaultMaxPanelInterviewers = 5
)

// Параметры ранжирования предложений
const (
	BaseScore           = 50
	MinScore            = 0
	MaxScore            = 100
	TimeOfDayBonus      = 20
	PreferredDayBonus   = 15
	BackToBackPenalty   = 25
	CandidateGapPenalty = 30

	BackToBackGap = 15 * time.Minute
)

// Границы частей дня (локальный час начала слота)
const (
	AfternoonStartHour = 12
	EveningStartHour   = 17
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
