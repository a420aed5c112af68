package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	ruleRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/rule"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/rules/models"
)

// Service сервис для работы с правилами планирования
type Service struct {
	ruleRepo  RuleRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(ruleRepo RuleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		ruleRepo:  ruleRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Create создает правило. Если правило создается как правило по умолчанию,
// флаг снимается с прежнего в той же транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating rule name=%q for tenant=%s, default=%v", req.Name, req.TenantID, req.IsDefault)

	rule := req.ToDomainRule()
	if err := validateRule(rule); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.SchedulingRule
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if rule.IsDefault {
			if err := s.ruleRepo.ClearDefault(txCtx, rule.TenantID); err != nil {
				return err
			}
		}
		var err error
		created, err = s.ruleRepo.Create(txCtx, rule)
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created rule id=%s", created.ID)
	return models.FromDomainRule(created), nil
}

// GetByID получает правило по ID
func (s *Service) GetByID(ctx context.Context, tenantID, id string) (*models.RuleResponse, error) {
	rule, err := s.get(ctx, "GetByID", tenantID, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRule(rule), nil
}

// List возвращает правила тенанта, правило по умолчанию первым
func (s *Service) List(ctx context.Context, tenantID string) (*models.RuleListResponse, error) {
	s.logger.Info("List: fetching rules for tenant=%s", tenantID)

	rules, err := s.ruleRepo.List(ctx, tenantID)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// Update частично обновляет правило
func (s *Service) Update(ctx context.Context, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Update: updating rule id=%s for tenant=%s", req.ID, req.TenantID)

	rule, err := s.get(ctx, "Update", req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(rule)
	if err := validateRule(rule); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, s.mapRepoError("Update", req.ID, err)
	}

	s.logger.Info("Update: successfully updated rule id=%s", rule.ID)
	return models.FromDomainRule(rule), nil
}

// SetDefault делает правило правилом по умолчанию. У тенанта всегда не больше одного такого правила
func (s *Service) SetDefault(ctx context.Context, tenantID, id string) (*models.RuleResponse, error) {
	s.logger.Info("SetDefault: rule id=%s for tenant=%s", id, tenantID)

	var rule *domain.SchedulingRule
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.ruleRepo.ClearDefault(txCtx, tenantID); err != nil {
			return err
		}
		if err := s.ruleRepo.SetDefault(txCtx, tenantID, id); err != nil {
			return err
		}
		var err error
		rule, err = s.ruleRepo.GetByID(txCtx, tenantID, id)
		return err
	})
	if err != nil {
		return nil, s.mapRepoError("SetDefault", id, err)
	}

	s.logger.Info("SetDefault: rule id=%s is now default for tenant=%s", id, tenantID)
	return models.FromDomainRule(rule), nil
}

// Delete удаляет правило. После удаления правила по умолчанию действует встроенное
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	s.logger.Info("Delete: deleting rule id=%s for tenant=%s", id, tenantID)

	if err := s.ruleRepo.Delete(ctx, tenantID, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted rule id=%s", id)
	return nil
}

func (s *Service) get(ctx context.Context, op, tenantID, id string) (*domain.SchedulingRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return rule, nil
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, ruleRepo.ErrRuleNotFound) {
		s.logger.Warn("%s: rule id=%s not found", op, id)
		return ErrRuleNotFound
	}
	s.logger.Error("%s: repository error for rule id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// validateRule проверяет значения правила
func validateRule(r *domain.SchedulingRule) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxRuleNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, domain.MaxRuleNameLength)
	}
	r.Name = name

	if r.MinNoticeMins < 0 || r.MinNoticeMins > domain.MaxNoticeMins {
		return fmt.Errorf("%w: minNoticeMins must be within [0, %d]", ErrInvalidInput, domain.MaxNoticeMins)
	}
	if r.BufferBeforeMins < 0 || r.BufferBeforeMins > domain.MaxBufferMins {
		return fmt.Errorf("%w: bufferBeforeMins must be within [0, %d]", ErrInvalidInput, domain.MaxBufferMins)
	}
	if r.BufferAfterMins < 0 || r.BufferAfterMins > domain.MaxBufferMins {
		return fmt.Errorf("%w: bufferAfterMins must be within [0, %d]", ErrInvalidInput, domain.MaxBufferMins)
	}
	if r.DefaultSlotMins < domain.MinDurationMins || r.DefaultSlotMins > domain.MaxDurationMins {
		return fmt.Errorf("%w: defaultSlotMins must be within [%d, %d]",
			ErrInvalidInput, domain.MinDurationMins, domain.MaxDurationMins)
	}
	return nil
}
