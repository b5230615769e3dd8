package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/advice"
	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// Advisor runs a prompt and reports in-flight task ids.
// *advice.Provider implements it.
type Advisor interface {
	Ask(ctx context.Context, p advice.Prompt) string
	Loading() []string
}

var _ Advisor = (*advice.Provider)(nil)

// AdviceService builds prompts from stored records and hands them to an
// Advisor. The farm lock is not held while the completion runs.
type AdviceService struct {
	goats     repo.GoatRepo
	pastures  repo.PastureRepo
	equipment repo.EquipmentRepo
	advisor   Advisor
}

// NewAdviceService constructs an AdviceService.
func NewAdviceService(goats repo.GoatRepo, pastures repo.PastureRepo, equipment repo.EquipmentRepo, a Advisor) *AdviceService {
	return &AdviceService{goats: goats, pastures: pastures, equipment: equipment, advisor: a}
}

// GoatAdvice answers one of the goat templates that need no extra input:
// profile, feeding, breeding or milk.
func (s *AdviceService) GoatAdvice(ctx context.Context, goatID uuid.UUID, kind advice.Kind) (domain.Advice, error) {
	var build func(domain.Goat) advice.Prompt
	switch kind {
	case advice.KindProfile:
		build = advice.GoatProfile
	case advice.KindFeeding:
		build = advice.FeedingPlan
	case advice.KindBreeding:
		build = advice.BreedingTips
	case advice.KindMilk:
		build = advice.MilkTrend
	default:
		return domain.Advice{}, fmt.Errorf("%w: unsupported advice kind %q", domain.ErrValidation, kind)
	}

	g, err := s.goats.GetByID(ctx, goatID)
	if err != nil {
		return domain.Advice{}, fmt.Errorf("service.AdviceService.GoatAdvice: %w", err)
	}
	return s.ask(ctx, build(g)), nil
}

// HealthAdvice analyses the described symptoms for a goat.
func (s *AdviceService) HealthAdvice(ctx context.Context, goatID uuid.UUID, symptoms string) (domain.Advice, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return domain.Advice{}, fmt.Errorf("%w: symptoms are required", domain.ErrValidation)
	}
	g, err := s.goats.GetByID(ctx, goatID)
	if err != nil {
		return domain.Advice{}, fmt.Errorf("service.AdviceService.HealthAdvice: %w", err)
	}
	return s.ask(ctx, advice.HealthSymptoms(g, symptoms)), nil
}

// PastureAdvice asks for grazing advice on a pasture.
func (s *AdviceService) PastureAdvice(ctx context.Context, pastureID uuid.UUID) (domain.Advice, error) {
	p, err := s.pastures.GetByID(ctx, pastureID)
	if err != nil {
		return domain.Advice{}, fmt.Errorf("service.AdviceService.PastureAdvice: %w", err)
	}
	return s.ask(ctx, advice.PastureManagement(p)), nil
}

// EquipmentAdvice asks for maintenance tips on a piece of equipment.
func (s *AdviceService) EquipmentAdvice(ctx context.Context, equipmentID uuid.UUID) (domain.Advice, error) {
	e, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return domain.Advice{}, fmt.Errorf("service.AdviceService.EquipmentAdvice: %w", err)
	}
	return s.ask(ctx, advice.EquipmentMaintenance(e)), nil
}

// Question answers a free-form question.
func (s *AdviceService) Question(ctx context.Context, q string) (domain.Advice, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return domain.Advice{}, fmt.Errorf("%w: question is required", domain.ErrValidation)
	}
	return s.ask(ctx, advice.Question(q)), nil
}

// Tasks returns the task ids currently being answered.
func (s *AdviceService) Tasks() []string {
	return s.advisor.Loading()
}

func (s *AdviceService) ask(ctx context.Context, p advice.Prompt) domain.Advice {
	return domain.Advice{TaskID: p.TaskID, Kind: string(p.Kind), Answer: s.advisor.Ask(ctx, p)}
}
