package book_slot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// slotStore хранилище слотов с атомарным Book, как UPDATE ... WHERE status='AVAILABLE'
type slotStore struct {
	mu    sync.Mutex
	slots map[string]domain.InterviewSlot
	// getErrs ошибки, которые по очереди вернут следующие вызовы GetByID
	getErrs []error
	gets    int
}

func newSlotStore(slots ...domain.InterviewSlot) *slotStore {
	s := &slotStore{slots: make(map[string]domain.InterviewSlot)}
	for _, slot := range slots {
		s.slots[slot.ID] = slot
	}
	return s
}

func (s *slotStore) GetByID(_ context.Context, tenantID, id string) (*domain.InterviewSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if len(s.getErrs) > 0 {
		err := s.getErrs[0]
		s.getErrs = s.getErrs[1:]
		return nil, err
	}
	slot, ok := s.slots[id]
	if !ok || slot.TenantID != tenantID {
		return nil, slotRepo.ErrSlotNotFound
	}
	slot.Participants = append(domain.Participants(nil), slot.Participants...)
	return &slot, nil
}

func (s *slotStore) Book(_ context.Context, slot *domain.InterviewSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.slots[slot.ID]
	if !ok || current.Status != domain.SlotStatusAvailable {
		return slotRepo.ErrSlotAlreadyBooked
	}
	stored := *slot
	stored.Status = domain.SlotStatusBooked
	s.slots[slot.ID] = stored
	return nil
}

func (s *slotStore) get(id string) domain.InterviewSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[id]
}

type interviewStore struct {
	mu      sync.Mutex
	created []*domain.Interview
}

func (s *interviewStore) Create(_ context.Context, iv *domain.Interview) (*domain.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv.ID = fmt.Sprintf("iv-%d", len(s.created)+1)
	s.created = append(s.created, iv)
	return iv, nil
}

type blockStore struct {
	mu     sync.Mutex
	blocks []*domain.BusyBlock
}

func (s *blockStore) CreateBatch(_ context.Context, blocks []*domain.BusyBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, blocks...)
	return nil
}

// panelBusy отдает занятость из блоков хранилища и дополнительных записей
type panelBusy struct {
	blocks *blockStore
	extra  map[string][]scheduling.BusyEntry
	err    error
}

func (p *panelBusy) BusyForPanel(_ context.Context, _ string, userIDs []string, rng interval.Interval) ([]*scheduling.BusySet, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.blocks.mu.Lock()
	defer p.blocks.mu.Unlock()

	sets := make([]*scheduling.BusySet, 0, len(userIDs))
	for _, id := range userIDs {
		set := &scheduling.BusySet{UserID: id, Range: rng}
		for _, b := range p.blocks.blocks {
			if b.UserID == id {
				set.Entries = append(set.Entries, scheduling.BusyEntry{
					Interval: b.Interval(),
					Source:   scheduling.BusySourceInterview,
					SourceID: *b.SourceID,
				})
			}
		}
		set.Entries = append(set.Entries, p.extra[id]...)
		sets = append(sets, set)
	}
	return sets, nil
}

type recordingCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *recordingCache) Invalidate(_ context.Context, _ string, userIDs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userIDs...)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.SlotEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.SlotEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	attempts map[string]int
}

func (m *recordingMetrics) RecordBookingAttempt(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attempts == nil {
		m.attempts = make(map[string]int)
	}
	m.attempts[result]++
}

func (m *recordingMetrics) AddConflicts(string, int) {}

// passThroughTx выполняет fn без транзакции: изоляцию обеспечивает CAS в slotStore
type passThroughTx struct{}

func (passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var errBrokerDown = errors.New("broker down")

type env struct {
	slots      *slotStore
	interviews *interviewStore
	blocks     *blockStore
	busy       *panelBusy
	cache      *recordingCache
	publisher  *recordingPublisher
	metrics    *recordingMetrics
	uc         *UseCase
}

func at(h, m int) time.Time {
	return time.Date(2025, 10, 15, h, m, 0, 0, time.UTC)
}

func availableSlot(id string) domain.InterviewSlot {
	return domain.InterviewSlot{
		ID:       id,
		TenantID: "t1",
		Participants: domain.Participants{
			{Type: domain.ParticipantUser, ID: "u1"},
			{Type: domain.ParticipantUser, ID: "u2"},
		},
		StartAt:  at(14, 0),
		EndAt:    at(15, 0),
		Timezone: "UTC",
		Status:   domain.SlotStatusAvailable,
	}
}

func newEnv(slots ...domain.InterviewSlot) *env {
	e := &env{
		slots:      newSlotStore(slots...),
		interviews: &interviewStore{},
		blocks:     &blockStore{},
		cache:      &recordingCache{},
		publisher:  &recordingPublisher{},
		metrics:    &recordingMetrics{},
	}
	e.busy = &panelBusy{blocks: e.blocks}
	e.uc = NewUseCase(e.slots, e.interviews, e.blocks, e.busy, e.cache, e.publisher, e.metrics, passThroughTx{}, loggerNop())
	e.uc.timeProvider = fixedClock(at(9, 0))
	return e
}
