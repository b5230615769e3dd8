package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
)

// ConsumptionRepo defines the persistence operations for feed consumption
// records. Records are immutable once logged; there is no Update.
type ConsumptionRepo interface {
	List(ctx context.Context) ([]domain.FeedConsumption, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.FeedConsumption, error)
	Create(ctx context.Context, fc domain.FeedConsumption) (domain.FeedConsumption, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type farmConsumptionRepo struct {
	c collection[domain.FeedConsumption]
}

// NewConsumptionRepo returns a ConsumptionRepo backed by the farm.
func NewConsumptionRepo(f *Farm) ConsumptionRepo {
	return &farmConsumptionRepo{c: collection[domain.FeedConsumption]{
		f:    f,
		slot: func(s *Snapshot) *[]domain.FeedConsumption { return &s.FeedConsumption },
		idOf: func(fc domain.FeedConsumption) uuid.UUID { return fc.ID },
	}}
}

func (r *farmConsumptionRepo) List(_ context.Context) ([]domain.FeedConsumption, error) {
	return r.c.list(), nil
}

func (r *farmConsumptionRepo) GetByID(_ context.Context, id uuid.UUID) (domain.FeedConsumption, error) {
	fc, err := r.c.get(id)
	if err != nil {
		return domain.FeedConsumption{}, fmt.Errorf("repo.ConsumptionRepo.GetByID: %w", err)
	}
	return fc, nil
}

func (r *farmConsumptionRepo) Create(ctx context.Context, fc domain.FeedConsumption) (domain.FeedConsumption, error) {
	fc.ID = uuid.New()
	if err := r.c.create(ctx, fc); err != nil {
		return domain.FeedConsumption{}, fmt.Errorf("repo.ConsumptionRepo.Create: %w", err)
	}
	return fc, nil
}

func (r *farmConsumptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.ConsumptionRepo.Delete: %w", err)
	}
	return nil
}
