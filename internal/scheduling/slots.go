package scheduling

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// SliceFreeTime нарезает свободные интервалы на окна длиной step. Хвосты короче step отбрасываются
func SliceFreeTime(free []interval.Interval, step time.Duration) []interval.Interval {
	windows := make([]interval.Interval, 0)
	if step <= 0 {
		return windows
	}
	for _, f := range interval.Merge(free) {
		windows = append(windows, interval.Split(f, step)...)
	}
	return windows
}

// GenerateSlots вычисляет окна слотов из общего свободного времени панели.
//
// Каждый интервал сужается на буферы правила (если правило не разрешает пересечения),
// затем отбрасывается время раньше Now + MinNotice, и остаток нарезается шагом Duration
// от своего начала. Все окна имеют длину ровно Duration
func GenerateSlots(free []interval.Interval, params SlotParams) []interval.Interval {
	rule := params.Rule
	if rule == nil {
		rule = domain.BuiltInRule("")
	}

	duration := params.Duration
	if duration <= 0 {
		duration = time.Duration(rule.DefaultSlotMins) * time.Minute
	}
	if duration <= 0 {
		return []interval.Interval{}
	}

	before, after := rule.Buffers()
	notBefore := params.Now.UTC().Add(rule.MinNotice())

	windows := make([]interval.Interval, 0)
	for _, f := range interval.Merge(free) {
		shrunk, ok := interval.Shrink(f, before, after)
		if !ok {
			continue
		}

		start := shrunk.Start
		if start.Before(notBefore) {
			start = notBefore
		}

		for ; !start.Add(duration).After(shrunk.End); start = start.Add(duration) {
			windows = append(windows, interval.Interval{Start: start, End: start.Add(duration)})
		}
	}

	return windows
}

// NewAvailableSlots создает слоты в статусе AVAILABLE с панелью в качестве участников
func NewAvailableSlots(
	tenantID string,
	organizerID *string,
	panel []domain.SlotParticipant,
	timezone string,
	windows []interval.Interval,
	now time.Time,
) []*domain.InterviewSlot {
	slots := make([]*domain.InterviewSlot, 0, len(windows))
	for _, w := range windows {
		participants := make(domain.Participants, len(panel))
		copy(participants, panel)

		slots = append(slots, &domain.InterviewSlot{
			TenantID:     tenantID,
			OrganizerID:  organizerID,
			Participants: participants,
			StartAt:      w.Start,
			EndAt:        w.End,
			Timezone:     timezone,
			Status:       domain.SlotStatusAvailable,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return slots
}

// PanelParticipants превращает ID интервьюеров в участников типа user
func PanelParticipants(userIDs []string) []domain.SlotParticipant {
	panel := make([]domain.SlotParticipant, 0, len(userIDs))
	for _, id := range userIDs {
		panel = append(panel, domain.SlotParticipant{Type: domain.ParticipantUser, ID: id})
	}
	return panel
}
