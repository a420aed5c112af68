package scheduling

import (
	"context"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/types"
)

// 2025-10-15 - среда
var wednesday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return wednesday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func iv(h1, m1, h2, m2 int) interval.Interval {
	return interval.Interval{Start: at(h1, m1), End: at(h2, m2)}
}

func wholeDay() interval.Interval {
	return interval.Interval{Start: wednesday, End: wednesday.Add(24 * time.Hour)}
}

func weekdays(start, end string) domain.WeeklyPatterns {
	patterns := make(domain.WeeklyPatterns, 0, 5)
	for d := time.Monday; d <= time.Friday; d++ {
		patterns = append(patterns, domain.WeeklyPattern{
			DayOfWeek: d,
			Start:     types.TimeString(start),
			End:       types.TimeString(end),
		})
	}
	return patterns
}

func nineToFive(userID, tz string) *domain.WorkingHours {
	return &domain.WorkingHours{
		ID:       "wh-" + userID,
		TenantID: "t1",
		UserID:   userID,
		Weekly:   weekdays("09:00", "17:00"),
		Timezone: tz,
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeSources реализует все источники данных агрегатора в памяти
type fakeSources struct {
	mu           sync.Mutex
	workingHours map[string][]*domain.WorkingHours
	blocks       map[string][]*domain.BusyBlock
	interviews   []*domain.Interview
	calls        int
}

func newFakeSources() *fakeSources {
	return &fakeSources{
		workingHours: make(map[string][]*domain.WorkingHours),
		blocks:       make(map[string][]*domain.BusyBlock),
	}
}

func (f *fakeSources) ListByUser(_ context.Context, _, userID string) ([]*domain.WorkingHours, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.workingHours[userID], nil
}

func (f *fakeSources) ListByUserInRange(_ context.Context, _, userID string, rng interval.Interval) ([]*domain.BusyBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.BusyBlock, 0)
	for _, b := range f.blocks[userID] {
		if b.StartAt.Before(rng.End) && rng.Start.Before(b.EndAt) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeSources) ListActiveByUserInRange(_ context.Context, _, userID string, rng interval.Interval) ([]*domain.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Interview, 0)
	for _, i := range f.interviews {
		if i.IsActive() && i.HasInterviewer(userID) && i.Interval().Overlaps(rng) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeSources) ListActiveByCandidate(_ context.Context, _, candidateID string) ([]*domain.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Interview, 0)
	for _, i := range f.interviews {
		if i.IsActive() && i.CandidateID == candidateID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeSources) aggregator(opts ...AggregatorOption) *Aggregator {
	return NewAggregator(f, f, f, nopLogger{}, opts...)
}

// memCache кэш занятости в памяти
type memCache struct {
	mu   sync.Mutex
	sets map[string]*BusySet
	hits int
}

func (c *memCache) key(userID string, rng interval.Interval) string {
	return userID + rng.String()
}

func (c *memCache) Get(_ context.Context, _, userID string, rng interval.Interval) (*BusySet, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.sets[c.key(userID, rng)]
	if ok {
		c.hits++
	}
	return set, ok, nil
}

func (c *memCache) Set(_ context.Context, _, userID string, rng interval.Interval, set *BusySet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[c.key(userID, rng)] = set
	return nil
}
