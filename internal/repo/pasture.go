package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
)

// PastureRepo defines the persistence operations for pastures and their
// grazing history.
type PastureRepo interface {
	List(ctx context.Context) ([]domain.Pasture, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Pasture, error)
	Create(ctx context.Context, p domain.Pasture) (domain.Pasture, error)

	// Update keeps the id, DateCreated and grazing history.
	Update(ctx context.Context, p domain.Pasture) (domain.Pasture, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// AddGrazing appends rec and sets the last grazed date to rec.StartDate.
	AddGrazing(ctx context.Context, pastureID uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error)
}

type farmPastureRepo struct {
	c collection[domain.Pasture]
}

// NewPastureRepo returns a PastureRepo backed by the farm.
func NewPastureRepo(f *Farm) PastureRepo {
	return &farmPastureRepo{c: collection[domain.Pasture]{
		f:    f,
		slot: func(s *Snapshot) *[]domain.Pasture { return &s.Pastures },
		idOf: func(p domain.Pasture) uuid.UUID { return p.ID },
	}}
}

func (r *farmPastureRepo) List(_ context.Context) ([]domain.Pasture, error) {
	return r.c.list(), nil
}

func (r *farmPastureRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Pasture, error) {
	p, err := r.c.get(id)
	if err != nil {
		return domain.Pasture{}, fmt.Errorf("repo.PastureRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *farmPastureRepo) Create(ctx context.Context, p domain.Pasture) (domain.Pasture, error) {
	p.ID, p.DateCreated = r.c.f.newID()
	p.GrazingHistory = cloneNonNil(p.GrazingHistory)
	if err := r.c.create(ctx, p); err != nil {
		return domain.Pasture{}, fmt.Errorf("repo.PastureRepo.Create: %w", err)
	}
	return p, nil
}

func (r *farmPastureRepo) Update(ctx context.Context, p domain.Pasture) (domain.Pasture, error) {
	out, err := r.c.update(ctx, p.ID, func(prev domain.Pasture) (domain.Pasture, error) {
		p.DateCreated = prev.DateCreated
		p.GrazingHistory = prev.GrazingHistory
		return p, nil
	})
	if err != nil {
		return domain.Pasture{}, fmt.Errorf("repo.PastureRepo.Update: %w", err)
	}
	return out, nil
}

func (r *farmPastureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.PastureRepo.Delete: %w", err)
	}
	return nil
}

func (r *farmPastureRepo) AddGrazing(ctx context.Context, pastureID uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error) {
	rec.ID = uuid.New()
	rec.GoatIDs = cloneNonNil(rec.GoatIDs)
	out, err := r.c.update(ctx, pastureID, func(p domain.Pasture) (domain.Pasture, error) {
		p.GrazingHistory = appendCopy(p.GrazingHistory, rec)
		start := rec.StartDate
		p.LastGrazedDate = &start
		return p, nil
	})
	if err != nil {
		return domain.Pasture{}, fmt.Errorf("repo.PastureRepo.AddGrazing: %w", err)
	}
	return out, nil
}
