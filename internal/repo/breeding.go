package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
)

// BreedingRepo defines the persistence operations for breeding records.
type BreedingRepo interface {
	List(ctx context.Context) ([]domain.BreedingRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error)

	// Create assigns an id and DateCreated. The expected birth date is
	// stored as given; the service computes it.
	Create(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error)

	// Update keeps the id and DateCreated. Returns domain.ErrNotFound for unknown ids.
	Update(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

type farmBreedingRepo struct {
	c collection[domain.BreedingRecord]
}

// NewBreedingRepo returns a BreedingRepo backed by the farm.
func NewBreedingRepo(f *Farm) BreedingRepo {
	return &farmBreedingRepo{c: collection[domain.BreedingRecord]{
		f:    f,
		slot: func(s *Snapshot) *[]domain.BreedingRecord { return &s.BreedingRecords },
		idOf: func(br domain.BreedingRecord) uuid.UUID { return br.ID },
	}}
}

func (r *farmBreedingRepo) List(_ context.Context) ([]domain.BreedingRecord, error) {
	return r.c.list(), nil
}

func (r *farmBreedingRepo) GetByID(_ context.Context, id uuid.UUID) (domain.BreedingRecord, error) {
	br, err := r.c.get(id)
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("repo.BreedingRepo.GetByID: %w", err)
	}
	return br, nil
}

func (r *farmBreedingRepo) Create(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error) {
	br.ID, br.DateCreated = r.c.f.newID()
	br.KidIDs = cloneNonNil(br.KidIDs)
	if err := r.c.create(ctx, br); err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("repo.BreedingRepo.Create: %w", err)
	}
	return br, nil
}

func (r *farmBreedingRepo) Update(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error) {
	br.KidIDs = cloneNonNil(br.KidIDs)
	out, err := r.c.update(ctx, br.ID, func(prev domain.BreedingRecord) (domain.BreedingRecord, error) {
		br.DateCreated = prev.DateCreated
		return br, nil
	})
	if err != nil {
		return domain.BreedingRecord{}, fmt.Errorf("repo.BreedingRepo.Update: %w", err)
	}
	return out, nil
}

func (r *farmBreedingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.BreedingRepo.Delete: %w", err)
	}
	return nil
}
