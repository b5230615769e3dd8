package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// FeedingService implements business logic for feeding schedules and feed
// consumption records.
type FeedingService struct {
	schedules   repo.FeedingRepo
	consumption repo.ConsumptionRepo
}

// NewFeedingService constructs a FeedingService backed by the provided repos.
func NewFeedingService(schedules repo.FeedingRepo, consumption repo.ConsumptionRepo) *FeedingService {
	return &FeedingService{schedules: schedules, consumption: consumption}
}

// ---- schedules ----

// List returns one page of schedules ordered by feeding time.
func (s *FeedingService) List(ctx context.Context, p domain.PaginationParams) ([]domain.FeedingSchedule, int, error) {
	items, err := s.schedules.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FeedingService.List: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].FeedingTime.Before(items[j].FeedingTime) })
	page, total := domain.Paginate(items, p)
	return page, total, nil
}

func (s *FeedingService) GetByID(ctx context.Context, id uuid.UUID) (domain.FeedingSchedule, error) {
	fs, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return domain.FeedingSchedule{}, fmt.Errorf("service.FeedingService.GetByID: %w", err)
	}
	return fs, nil
}

// Create validates and persists a new schedule.
func (s *FeedingService) Create(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error) {
	fs = feedingDefaults(fs)
	if err := validateFeeding(fs); err != nil {
		return domain.FeedingSchedule{}, err
	}
	result, err := s.schedules.Create(ctx, fs)
	if err != nil {
		return domain.FeedingSchedule{}, fmt.Errorf("service.FeedingService.Create: %w", err)
	}
	return result, nil
}

func (s *FeedingService) Update(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error) {
	fs = feedingDefaults(fs)
	if err := validateFeeding(fs); err != nil {
		return domain.FeedingSchedule{}, err
	}
	result, err := s.schedules.Update(ctx, fs)
	if err != nil {
		return domain.FeedingSchedule{}, fmt.Errorf("service.FeedingService.Update: %w", err)
	}
	return result, nil
}

func (s *FeedingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FeedingService.Delete: %w", err)
	}
	return nil
}

func feedingDefaults(fs domain.FeedingSchedule) domain.FeedingSchedule {
	if fs.FeedType == "" {
		fs.FeedType = domain.FeedHay
	}
	if fs.IsGroupFeeding {
		fs.GoatID = nil
	}
	return fs
}

func validateFeeding(fs domain.FeedingSchedule) error {
	if !fs.FeedType.Valid() {
		return fmt.Errorf("%w: unknown feed type %q", domain.ErrValidation, fs.FeedType)
	}
	if fs.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}
	if !fs.IsGroupFeeding && fs.GoatID == nil {
		return fmt.Errorf("%w: goat_id is required unless is_group_feeding is set", domain.ErrValidation)
	}
	return nil
}

// ---- consumption ----

// ListConsumption returns one page of consumption records, newest first.
func (s *FeedingService) ListConsumption(ctx context.Context, p domain.PaginationParams) ([]domain.FeedConsumption, int, error) {
	items, err := s.consumption.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.FeedingService.ListConsumption: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	page, total := domain.Paginate(items, p)
	return page, total, nil
}

func (s *FeedingService) GetConsumption(ctx context.Context, id uuid.UUID) (domain.FeedConsumption, error) {
	fc, err := s.consumption.GetByID(ctx, id)
	if err != nil {
		return domain.FeedConsumption{}, fmt.Errorf("service.FeedingService.GetConsumption: %w", err)
	}
	return fc, nil
}

// LogConsumption validates quantities, computes the consumption rate and
// persists the record. Any client-supplied rate is ignored.
func (s *FeedingService) LogConsumption(ctx context.Context, fc domain.FeedConsumption) (domain.FeedConsumption, error) {
	fc = consumptionDefaults(fc)
	if err := validateConsumption(fc); err != nil {
		return domain.FeedConsumption{}, err
	}

	result, err := s.consumption.Create(ctx, fc)
	if err != nil {
		return domain.FeedConsumption{}, fmt.Errorf("service.FeedingService.LogConsumption: %w", err)
	}
	return result, nil
}

func (s *FeedingService) DeleteConsumption(ctx context.Context, id uuid.UUID) error {
	if err := s.consumption.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.FeedingService.DeleteConsumption: %w", err)
	}
	return nil
}

// consumptionDefaults fills the feed type and derives the consumption rate.
func consumptionDefaults(fc domain.FeedConsumption) domain.FeedConsumption {
	if fc.FeedType == "" {
		fc.FeedType = domain.FeedHay
	}
	fc.ConsumptionRate = domain.ConsumptionRate(fc.PlannedQuantity, fc.ActualQuantity)
	return fc
}

func validateConsumption(fc domain.FeedConsumption) error {
	switch {
	case fc.GoatID == uuid.Nil:
		return fmt.Errorf("%w: goat_id is required", domain.ErrValidation)
	case !fc.FeedType.Valid():
		return fmt.Errorf("%w: unknown feed type %q", domain.ErrValidation, fc.FeedType)
	case fc.PlannedQuantity < 0 || fc.ActualQuantity < 0:
		return fmt.Errorf("%w: quantities must not be negative", domain.ErrValidation)
	}
	return nil
}
