package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
)

// FeedingRepo defines the persistence operations for feeding schedules.
type FeedingRepo interface {
	List(ctx context.Context) ([]domain.FeedingSchedule, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.FeedingSchedule, error)

	// Create assigns an id and DateCreated.
	Create(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error)

	// Update keeps the id and DateCreated. Returns domain.ErrNotFound for unknown ids.
	Update(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

type farmFeedingRepo struct {
	c collection[domain.FeedingSchedule]
}

// NewFeedingRepo returns a FeedingRepo backed by the farm.
func NewFeedingRepo(f *Farm) FeedingRepo {
	return &farmFeedingRepo{c: collection[domain.FeedingSchedule]{
		f:    f,
		slot: func(s *Snapshot) *[]domain.FeedingSchedule { return &s.FeedingSchedules },
		idOf: func(fs domain.FeedingSchedule) uuid.UUID { return fs.ID },
	}}
}

func (r *farmFeedingRepo) List(_ context.Context) ([]domain.FeedingSchedule, error) {
	return r.c.list(), nil
}

func (r *farmFeedingRepo) GetByID(_ context.Context, id uuid.UUID) (domain.FeedingSchedule, error) {
	fs, err := r.c.get(id)
	if err != nil {
		return domain.FeedingSchedule{}, fmt.Errorf("repo.FeedingRepo.GetByID: %w", err)
	}
	return fs, nil
}

func (r *farmFeedingRepo) Create(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error) {
	fs.ID, fs.DateCreated = r.c.f.newID()
	fs.Supplements = cloneNonNil(fs.Supplements)
	if err := r.c.create(ctx, fs); err != nil {
		return domain.FeedingSchedule{}, fmt.Errorf("repo.FeedingRepo.Create: %w", err)
	}
	return fs, nil
}

func (r *farmFeedingRepo) Update(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error) {
	fs.Supplements = cloneNonNil(fs.Supplements)
	out, err := r.c.update(ctx, fs.ID, func(prev domain.FeedingSchedule) (domain.FeedingSchedule, error) {
		fs.DateCreated = prev.DateCreated
		return fs, nil
	})
	if err != nil {
		return domain.FeedingSchedule{}, fmt.Errorf("repo.FeedingRepo.Update: %w", err)
	}
	return out, nil
}

func (r *farmFeedingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.FeedingRepo.Delete: %w", err)
	}
	return nil
}
