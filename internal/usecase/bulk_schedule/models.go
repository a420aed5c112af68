package bulk_schedule

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// Request массовое планирование интервью
type Request struct {
	TenantID       string
	CandidateIDs   []string
	InterviewerIDs []string
	DurationMins   int
	Mode           string
	StartTime      time.Time
	Stage          *string
	Timezone       string

	// Устаревшие поля, только для отказа
	Strategy      *string
	ScheduledTime *string
}

// Created запланированное интервью кандидата
type Created struct {
	CandidateID string
	InterviewID string
	StartAt     time.Time
	EndAt       time.Time
}

// Skipped пропущенный кандидат
type Skipped struct {
	CandidateID string
	Reason      string
}

// Response итог массового планирования
type Response struct {
	Total             int
	Scheduled         int
	Skipped           int
	BulkBatchID       string
	Mode              domain.SchedulingMode
	Created           []Created
	SkippedCandidates []Skipped
}
