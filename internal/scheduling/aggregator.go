package scheduling

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

const tracerName = "github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"

// Aggregator собирает занятость пользователя из рабочих часов, блоков занятости и интервью
type Aggregator struct {
	workingHours WorkingHoursSource
	busyBlocks   BusyBlockSource
	interviews   InterviewSource
	cache        BusyCache
	cacheMetrics CacheMetrics
	tracer       trace.Tracer
	logger       Logger
}

// AggregatorOption опция агрегатора
type AggregatorOption func(*Aggregator)

// WithCache включает кэш занятости
func WithCache(cache BusyCache, m CacheMetrics) AggregatorOption {
	return func(a *Aggregator) {
		a.cache = cache
		a.cacheMetrics = m
	}
}

// NewAggregator создает агрегатор занятости
func NewAggregator(
	workingHours WorkingHoursSource,
	busyBlocks BusyBlockSource,
	interviews InterviewSource,
	logger Logger,
	opts ...AggregatorOption,
) *Aggregator {
	a := &Aggregator{
		workingHours: workingHours,
		busyBlocks:   busyBlocks,
		interviews:   interviews,
		tracer:       otel.Tracer(tracerName),
		logger:       logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Busy возвращает занятость пользователя в диапазоне rng.
// Пользователь без рабочих часов считается занятым весь диапазон (UnknownAvailability = true)
func (a *Aggregator) Busy(ctx context.Context, tenantID, userID string, rng interval.Interval) (*BusySet, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	rng = rng.UTC()

	ctx, span := a.tracer.Start(ctx, "scheduling.Busy", trace.WithAttributes(
		attribute.String("tenant.id", tenantID),
		attribute.String("user.id", userID),
	))
	defer span.End()

	if cached, ok := a.fromCache(ctx, tenantID, userID, rng); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	set, err := a.aggregate(ctx, tenantID, userID, rng)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("busy.entries", len(set.Entries)),
		attribute.Bool("availability.unknown", set.UnknownAvailability),
	)

	if a.cache != nil {
		if err := a.cache.Set(ctx, tenantID, userID, rng, set); err != nil {
			a.logger.Warn("Busy: failed to cache busy set user=%s: %v", userID, err)
		}
	}

	return set, nil
}

// BusyForPanel собирает занятость панели параллельно.
// Результат упорядочен так же, как userIDs
func (a *Aggregator) BusyForPanel(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval) ([]*BusySet, error) {
	if len(userIDs) == 0 {
		return nil, ErrEmptyPanel
	}

	sets := make([]*BusySet, len(userIDs))
	g, gctx := errgroup.WithContext(ctx)

	for i, userID := range userIDs {
		i, userID := i, userID
		g.Go(func() error {
			set, err := a.Busy(gctx, tenantID, userID, rng)
			if err != nil {
				return fmt.Errorf("user %s: %w", userID, err)
			}
			sets[i] = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

func (a *Aggregator) aggregate(ctx context.Context, tenantID, userID string, rng interval.Interval) (*BusySet, error) {
	set := &BusySet{UserID: userID, Range: rng, Entries: make([]BusyEntry, 0)}

	// 1. Нерабочее время
	records, err := a.workingHours.ListByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user=%s: %v", ErrFetchWorkingHours, userID, err)
	}

	if len(records) == 0 {
		set.UnknownAvailability = true
		set.Entries = append(set.Entries, BusyEntry{
			Interval: rng,
			Source:   BusySourceUnknownAvailability,
			Label:    "no working hours configured",
		})
	} else {
		free, err := ExpandAll(records, rng)
		if err != nil {
			return nil, fmt.Errorf("%w: user=%s: %v", ErrInvalidSourceData, userID, err)
		}
		for _, off := range interval.Subtract(rng, free) {
			set.Entries = append(set.Entries, BusyEntry{
				Interval: off,
				Source:   BusySourceWorkingHours,
				Label:    "outside working hours",
			})
		}
	}

	// 2. Активные интервью. Берутся до блоков, чтобы отбросить их зеркальные копии
	interviews, err := a.interviews.ListActiveByUserInRange(ctx, tenantID, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: user=%s: %v", ErrFetchInterviews, userID, err)
	}

	interviewIDs := make(map[string]struct{}, len(interviews))
	for _, iv := range interviews {
		if !iv.IsActive() {
			continue
		}
		span := iv.Interval()
		if err := span.Validate(); err != nil {
			return nil, fmt.Errorf("%w: interview %s: %v", ErrInvalidSourceData, iv.ID, err)
		}
		interviewIDs[iv.ID] = struct{}{}

		label := "interview"
		if iv.Stage != nil && *iv.Stage != "" {
			label = *iv.Stage
		}
		set.Entries = append(set.Entries, BusyEntry{
			Interval: span,
			Source:   BusySourceInterview,
			SourceID: iv.ID,
			Label:    label,
		})
	}

	// 3. Блоки занятости
	blocks, err := a.busyBlocks.ListByUserInRange(ctx, tenantID, userID, rng)
	if err != nil {
		return nil, fmt.Errorf("%w: user=%s: %v", ErrFetchBusyBlocks, userID, err)
	}

	for _, b := range blocks {
		if b.Source == domain.BusySourceInterview && b.SourceID != nil {
			if _, mirrored := interviewIDs[*b.SourceID]; mirrored {
				continue
			}
		}
		span := b.Interval()
		if err := span.Validate(); err != nil {
			return nil, fmt.Errorf("%w: busy block %s: %v", ErrInvalidSourceData, b.ID, err)
		}

		entry := BusyEntry{Interval: span, Source: BusySource(b.Source), SourceID: b.ID}
		if b.SourceID != nil {
			entry.SourceID = *b.SourceID
		}
		if b.Reason != nil {
			entry.Label = *b.Reason
		} else if b.Metadata.Title != nil {
			entry.Label = *b.Metadata.Title
		}
		set.Entries = append(set.Entries, entry)
	}

	// 4. Склейка в пределах диапазона
	raw := make([]interval.Interval, 0, len(set.Entries))
	for _, e := range set.Entries {
		raw = append(raw, e.Interval)
	}
	set.Intervals = interval.Merge(interval.Clip(raw, rng))

	return set, nil
}

func (a *Aggregator) fromCache(ctx context.Context, tenantID, userID string, rng interval.Interval) (*BusySet, bool) {
	if a.cache == nil {
		return nil, false
	}

	set, ok, err := a.cache.Get(ctx, tenantID, userID, rng)
	if err != nil {
		a.logger.Warn("Busy: cache lookup failed user=%s: %v", userID, err)
		return nil, false
	}
	if a.cacheMetrics != nil {
		a.cacheMetrics.RecordCacheLookup(ok)
	}
	return set, ok
}
