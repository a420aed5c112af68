package get_suggestions

import "time"

// Preferences предпочтения в сыром виде
type Preferences struct {
	TimeOfDay                   string
	PreferredDays               []int // 0 = воскресенье .. 6 = суббота
	AvoidBackToBack             bool
	MinGapBetweenInterviewsMins int
}

// Request запрос предложений времени интервью
type Request struct {
	TenantID       string
	UserIDs        []string
	Start          time.Time
	End            time.Time
	DurationMins   int
	RuleID         *string
	CandidateID    *string
	Preferences    Preferences
	MaxSuggestions *int
	Timezone       string
}

// Suggestion предложенное время
type Suggestion struct {
	StartAt          time.Time
	EndAt            time.Time
	Score            int
	Reasons          []string
	UserAvailability map[string]bool
}

// Warning предупреждение о данных участника
type Warning struct {
	UserID  string
	Code    string
	Message string
}

// Response ранжированные предложения
type Response struct {
	Timezone            string
	Suggestions         []Suggestion
	Warnings            []Warning
	TotalAvailableSlots int
	QueryStart          time.Time
	QueryEnd            time.Time
	ProcessingTime      time.Duration
}
