package check_conflicts

import "time"

// Request проверка предлагаемого времени для участников
type Request struct {
	TenantID  string
	UserIDs   []string
	Start     time.Time
	End       time.Time
	ExcludeID *string // интервью, которое переносится и не должно конфликтовать само с собой
	Timezone  string
}

// Conflict пересечение с занятостью участника
type Conflict struct {
	UserID       string
	StartAt      time.Time
	EndAt        time.Time
	OverlapStart time.Time
	OverlapEnd   time.Time
	Source       string
	SourceID     string
	Label        string
}

// Response результат проверки
type Response struct {
	HasConflicts bool
	Conflicts    []Conflict
}
