package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// BreedingService implements business logic for breeding records.
type BreedingService struct {
	records repo.BreedingRepo
}

// NewBreedingService constructs a BreedingService backed by the provided repo.
func NewBreedingService(records repo.BreedingRepo) *BreedingService {
	return &BreedingService{records: records}
}

// List returns one page of records, most recent mating first.
func (s *BreedingService) List(ctx context.Context, p domain.PaginationParams) ([]domain.BreedingRecord, int, error) {
	items, err := s.records.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BreedingService.List: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].MatingDate.After(items[j].MatingDate) })
	page, total := domain.Paginate(items, p)
	return page, total, nil
}

func (s *BreedingService) GetByID(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error) {
	br, err := s.records.GetByID(ctx, id)
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("service.BreedingService.GetByID: %w", err)
	}
	return br, nil
}

// Create validates the record and sets its expected birth date from the
// mating date.
func (s *BreedingService) Create(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error) {
	br = breedingDefaults(br)
	if err := validateBreeding(br); err != nil {
		return domain.BreedingRecord{}, err
	}
	br.ExpectedBirthDate = domain.ExpectedBirthDate(br.MatingDate)

	result, err := s.records.Create(ctx, br)
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("service.BreedingService.Create: %w", err)
	}
	return result, nil
}

// Update validates the record. The expected birth date is recomputed when
// the mating date changed and kept as stored otherwise.
func (s *BreedingService) Update(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error) {
	br = breedingDefaults(br)
	if err := validateBreeding(br); err != nil {
		return domain.BreedingRecord{}, err
	}
	prev, err := s.records.GetByID(ctx, br.ID)
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("service.BreedingService.Update: %w", err)
	}
	if !prev.MatingDate.Equal(br.MatingDate) || br.ExpectedBirthDate.IsZero() {
		br.ExpectedBirthDate = domain.ExpectedBirthDate(br.MatingDate)
	}

	result, err := s.records.Update(ctx, br)
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("service.BreedingService.Update: %w", err)
	}
	return result, nil
}

func (s *BreedingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.BreedingService.Delete: %w", err)
	}
	return nil
}

func breedingDefaults(br domain.BreedingRecord) domain.BreedingRecord {
	if br.PregnancyStatus == "" {
		br.PregnancyStatus = domain.PregnancyUnknown
	}
	return br
}

func validateBreeding(br domain.BreedingRecord) error {
	if br.DoeID == uuid.Nil {
		return fmt.Errorf("%w: doe_id is required", domain.ErrValidation)
	}
	if br.MatingDate.IsZero() {
		return fmt.Errorf("%w: mating_date is required", domain.ErrValidation)
	}
	if !br.PregnancyStatus.Valid() {
		return fmt.Errorf("%w: unknown pregnancy status %q", domain.ErrValidation, br.PregnancyStatus)
	}
	if br.NumberOfKids < 0 {
		return fmt.Errorf("%w: number_of_kids must not be negative", domain.ErrValidation)
	}
	return nil
}
