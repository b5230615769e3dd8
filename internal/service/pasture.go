package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// PastureService implements business logic for pastures and grazing rotations.
type PastureService struct {
	pastures repo.PastureRepo
}

// NewPastureService constructs a PastureService backed by the provided repo.
func NewPastureService(r repo.PastureRepo) *PastureService {
	return &PastureService{pastures: r}
}

// List returns one page of pastures ordered by name.
func (s *PastureService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Pasture, int, error) {
	items, err := s.pastures.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PastureService.List: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	page, total := domain.Paginate(items, p)
	return page, total, nil
}

func (s *PastureService) GetByID(ctx context.Context, id uuid.UUID) (domain.Pasture, error) {
	p, err := s.pastures.GetByID(ctx, id)
	if err != nil {
		return domain.Pasture{}, fmt.Errorf("service.PastureService.GetByID: %w", err)
	}
	return p, nil
}

// Create validates and persists a new pasture. A zero rest period becomes
// domain.DefaultRestPeriodDays.
func (s *PastureService) Create(ctx context.Context, p domain.Pasture) (domain.Pasture, error) {
	p = pastureDefaults(p)
	if p.RestPeriod == 0 {
		p.RestPeriod = domain.DefaultRestPeriodDays
	}
	if err := validatePasture(p); err != nil {
		return domain.Pasture{}, err
	}
	result, err := s.pastures.Create(ctx, p)
	if err != nil {
		return domain.Pasture{}, fmt.Errorf("service.PastureService.Create: %w", err)
	}
	return result, nil
}

func (s *PastureService) Update(ctx context.Context, p domain.Pasture) (domain.Pasture, error) {
	p = pastureDefaults(p)
	if err := validatePasture(p); err != nil {
		return domain.Pasture{}, err
	}
	result, err := s.pastures.Update(ctx, p)
	if err != nil {
		return domain.Pasture{}, fmt.Errorf("service.PastureService.Update: %w", err)
	}
	return result, nil
}

func (s *PastureService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.pastures.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PastureService.Delete: %w", err)
	}
	return nil
}

// AddGrazing validates rec and logs the rotation. The goat count defaults
// to the number of listed goats.
func (s *PastureService) AddGrazing(ctx context.Context, pastureID uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error) {
	rec = grazingDefaults(rec)
	if err := validateGrazing(rec); err != nil {
		return domain.Pasture{}, err
	}
	p, err := s.pastures.AddGrazing(ctx, pastureID, rec)
	if err != nil {
		return domain.Pasture{}, fmt.Errorf("service.PastureService.AddGrazing: %w", err)
	}
	return p, nil
}

func pastureDefaults(p domain.Pasture) domain.Pasture {
	p.Name = strings.TrimSpace(p.Name)
	if p.GrassType == "" {
		p.GrassType = domain.GrassMixed
	}
	if p.Condition == "" {
		p.Condition = domain.PastureGood
	}
	return p
}

func validatePasture(p domain.Pasture) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case p.Size < 0:
		return fmt.Errorf("%w: size must not be negative", domain.ErrValidation)
	case p.RestPeriod < 0:
		return fmt.Errorf("%w: rest_period must not be negative", domain.ErrValidation)
	case p.Capacity < 0:
		return fmt.Errorf("%w: capacity must not be negative", domain.ErrValidation)
	case p.CurrentOccupancy < 0:
		return fmt.Errorf("%w: current_occupancy must not be negative", domain.ErrValidation)
	case !p.GrassType.Valid():
		return fmt.Errorf("%w: unknown grass type %q", domain.ErrValidation, p.GrassType)
	case !p.Condition.Valid():
		return fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, p.Condition)
	}
	return nil
}

func grazingDefaults(rec domain.GrazingRecord) domain.GrazingRecord {
	if rec.ConditionBefore == "" {
		rec.ConditionBefore = domain.PastureGood
	}
	if rec.NumberOfGoats == 0 {
		rec.NumberOfGoats = len(rec.GoatIDs)
	}
	return rec
}

func validateGrazing(rec domain.GrazingRecord) error {
	switch {
	case rec.StartDate.IsZero():
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	case rec.EndDate != nil && rec.EndDate.Before(rec.StartDate):
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	case rec.NumberOfGoats < 0:
		return fmt.Errorf("%w: number_of_goats must not be negative", domain.ErrValidation)
	case !rec.ConditionBefore.Valid():
		return fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, rec.ConditionBefore)
	case rec.ConditionAfter != nil && !rec.ConditionAfter.Valid():
		return fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, *rec.ConditionAfter)
	}
	return nil
}
