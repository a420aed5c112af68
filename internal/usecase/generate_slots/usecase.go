package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	ruleRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/rule"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

// UseCase use case генерации слотов из общего свободного времени панели
type UseCase struct {
	ruleRepo        RuleRepository
	slotRepo        SlotRepository
	resolver        AvailabilityResolver
	directory       UserDirectory
	metrics         Metrics
	timeProvider    TimeProvider
	maxPanel        int
	defaultTimezone string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. directory может быть nil - тогда участники не обогащаются
func NewUseCase(
	ruleRepo RuleRepository,
	slotRepo SlotRepository,
	resolver AvailabilityResolver,
	directory UserDirectory,
	metrics Metrics,
	maxPanel int,
	defaultTimezone string,
	logger Logger,
) *UseCase {
	return &UseCase{
		ruleRepo:        ruleRepo,
		slotRepo:        slotRepo,
		resolver:        resolver,
		directory:       directory,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		maxPanel:        maxPanel,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Execute генерирует и сохраняет слоты AVAILABLE
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: tenant=%s, users=%v, range=[%s, %s)",
		req.TenantID, req.UserIDs, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxPanel); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = uc.defaultTimezone
	}
	if _, err := time.LoadLocation(tz); err != nil {
		uc.logger.Warn("GenerateSlots: unknown timezone %q", tz)
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, tz)
	}

	// 2. Правило: указанное -> по умолчанию тенанта -> встроенное
	rule, err := uc.ruleRepo.GetWithFallback(ctx, req.TenantID, req.RuleID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			uc.logger.Warn("GenerateSlots: rule %s not found and tenant=%s has no default", ptr.Value(req.RuleID), req.TenantID)
			return nil, ErrRuleNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get rule: %v", err)
		return nil, fmt.Errorf("%w: failed to get rule: %v", ErrInternal, err)
	}

	if rule.IsBuiltIn() {
		uc.logger.Info("GenerateSlots: using built-in rule for tenant=%s", req.TenantID)
	} else {
		uc.logger.Info("GenerateSlots: using rule id=%s", rule.ID)
	}

	// 3. Общее свободное время панели
	rng := interval.Interval{Start: req.Start.UTC(), End: req.End.UTC()}
	availability, err := uc.resolver.GetAvailability(ctx, req.TenantID, req.UserIDs, rng, 0)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	// 4. Нарезка слотов
	duration := time.Duration(rule.DefaultSlotMins) * time.Minute
	if req.DurationMins != nil {
		duration = time.Duration(*req.DurationMins) * time.Minute
	}

	now := uc.timeProvider.Now()
	windows := scheduling.GenerateSlots(availability.Combined, scheduling.SlotParams{
		Duration: duration,
		Rule:     rule,
		Now:      now,
	})

	resp := &Response{
		RuleName:     rule.Name,
		DurationMins: int(duration / time.Minute),
		Slots:        make([]Slot, 0, len(windows)),
		Warnings:     make([]Warning, 0, len(availability.Warnings)),
	}
	if !rule.IsBuiltIn() {
		resp.RuleID = ptr.Ptr(rule.ID)
	}
	for _, w := range availability.Warnings {
		uc.logger.Warn("GenerateSlots: user=%s: %s", w.UserID, w.Message)
		resp.Warnings = append(resp.Warnings, Warning{UserID: w.UserID, Code: w.Code, Message: w.Message})
	}

	if len(windows) == 0 {
		uc.logger.Info("GenerateSlots: no free windows for panel %v", req.UserIDs)
		return resp, nil
	}

	// 5. Участники панели
	panel := uc.panel(ctx, req.TenantID, req.UserIDs)

	// 6. Сохраняем слоты
	slots := scheduling.NewAvailableSlots(req.TenantID, req.OrganizerID, panel, tz, windows, now.UTC())
	created, err := uc.slotRepo.CreateBatch(ctx, slots)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to save %d slots: %v", len(slots), err)
		return nil, fmt.Errorf("%w: failed to save slots: %v", ErrInternal, err)
	}

	uc.metrics.AddSlotsGenerated(len(created))
	uc.logger.Info("GenerateSlots: created %d slots of %s", len(created), duration)

	for _, s := range created {
		resp.Slots = append(resp.Slots, Slot{
			ID:           s.ID,
			StartAt:      s.StartAt,
			EndAt:        s.EndAt,
			Timezone:     s.Timezone,
			Status:       s.Status,
			Participants: s.Participants,
		})
	}

	return resp, nil
}

// panel строит участников панели, заполняя контакты из справочника, если он доступен
func (uc *UseCase) panel(ctx context.Context, tenantID string, userIDs []string) []domain.SlotParticipant {
	panel := scheduling.PanelParticipants(userIDs)
	if uc.directory == nil {
		return panel
	}

	users, err := uc.directory.GetUsersWithGracefulDegradation(ctx, tenantID, userIDs)
	if err != nil {
		uc.logger.Warn("GenerateSlots: participants are not enriched: %v", err)
	}

	for i := range panel {
		user, ok := users[panel[i].ID]
		if !ok {
			continue
		}
		if user.Name != "" {
			panel[i].Name = ptr.Ptr(user.Name)
		}
		if user.Email != "" {
			panel[i].Email = ptr.Ptr(user.Email)
		}
		panel[i].Phone = user.Phone
	}
	return panel
}
