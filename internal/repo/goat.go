package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
)

// GoatRepo defines the persistence operations for goats and the medical and
// milk records they own. The service layer depends on this interface so it
// can be unit-tested with a mock.
type GoatRepo interface {
	// List returns every goat in insertion order.
	List(ctx context.Context) ([]domain.Goat, error)

	// GetByID returns domain.ErrNotFound if no goat has that id.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Goat, error)

	// Create assigns an id and DateAdded and appends the goat.
	Create(ctx context.Context, g domain.Goat) (domain.Goat, error)

	// Update replaces the goat's editable fields. The id, DateAdded and both
	// record histories are kept. Returns domain.ErrNotFound for unknown ids.
	Update(ctx context.Context, g domain.Goat) (domain.Goat, error)

	// Delete removes a goat. Records elsewhere that reference it are left alone.
	Delete(ctx context.Context, id uuid.UUID) error

	AddMedicalRecord(ctx context.Context, goatID uuid.UUID, rec domain.MedicalRecord) (domain.Goat, error)
	DeleteMedicalRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)
	AddMilkRecord(ctx context.Context, goatID uuid.UUID, rec domain.MilkRecord) (domain.Goat, error)
	DeleteMilkRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)
}

type farmGoatRepo struct {
	c collection[domain.Goat]
}

// NewGoatRepo returns a GoatRepo backed by the farm.
func NewGoatRepo(f *Farm) GoatRepo {
	return &farmGoatRepo{c: collection[domain.Goat]{
		f:    f,
		slot: func(s *Snapshot) *[]domain.Goat { return &s.Goats },
		idOf: func(g domain.Goat) uuid.UUID { return g.ID },
	}}
}

func (r *farmGoatRepo) List(_ context.Context) ([]domain.Goat, error) {
	return r.c.list(), nil
}

func (r *farmGoatRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Goat, error) {
	g, err := r.c.get(id)
	if err != nil {
		return domain.Goat{}, fmt.Errorf("repo.GoatRepo.GetByID: %w", err)
	}
	return g, nil
}

func (r *farmGoatRepo) Create(ctx context.Context, g domain.Goat) (domain.Goat, error) {
	g.ID, g.DateAdded = r.c.f.newID()
	g.MedicalHistory = cloneNonNil(g.MedicalHistory)
	g.MilkProduction = cloneNonNil(g.MilkProduction)
	if err := r.c.create(ctx, g); err != nil {
		return domain.Goat{}, fmt.Errorf("repo.GoatRepo.Create: %w", err)
	}
	return g, nil
}

func (r *farmGoatRepo) Update(ctx context.Context, g domain.Goat) (domain.Goat, error) {
	out, err := r.c.update(ctx, g.ID, func(prev domain.Goat) (domain.Goat, error) {
		g.DateAdded = prev.DateAdded
		g.MedicalHistory = prev.MedicalHistory
		g.MilkProduction = prev.MilkProduction
		return g, nil
	})
	if err != nil {
		return domain.Goat{}, fmt.Errorf("repo.GoatRepo.Update: %w", err)
	}
	return out, nil
}

func (r *farmGoatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.GoatRepo.Delete: %w", err)
	}
	return nil
}

func (r *farmGoatRepo) AddMedicalRecord(ctx context.Context, goatID uuid.UUID, rec domain.MedicalRecord) (domain.Goat, error) {
	rec.ID = uuid.New()
	g, err := r.c.update(ctx, goatID, func(g domain.Goat) (domain.Goat, error) {
		g.MedicalHistory = appendCopy(g.MedicalHistory, rec)
		return g, nil
	})
	if err != nil {
		return domain.Goat{}, fmt.Errorf("repo.GoatRepo.AddMedicalRecord: %w", err)
	}
	return g, nil
}

func (r *farmGoatRepo) DeleteMedicalRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error) {
	g, err := r.c.update(ctx, goatID, func(g domain.Goat) (domain.Goat, error) {
		rest, removed := without(g.MedicalHistory, recordID, func(m domain.MedicalRecord) uuid.UUID { return m.ID })
		if !removed {
			return g, domain.ErrNotFound
		}
		g.MedicalHistory = rest
		return g, nil
	})
	if err != nil {
		return domain.Goat{}, fmt.Errorf("repo.GoatRepo.DeleteMedicalRecord: %w", err)
	}
	return g, nil
}

func (r *farmGoatRepo) AddMilkRecord(ctx context.Context, goatID uuid.UUID, rec domain.MilkRecord) (domain.Goat, error) {
	rec.ID = uuid.New()
	g, err := r.c.update(ctx, goatID, func(g domain.Goat) (domain.Goat, error) {
		g.MilkProduction = appendCopy(g.MilkProduction, rec)
		return g, nil
	})
	if err != nil {
		return domain.Goat{}, fmt.Errorf("repo.GoatRepo.AddMilkRecord: %w", err)
	}
	return g, nil
}

func (r *farmGoatRepo) DeleteMilkRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error) {
	g, err := r.c.update(ctx, goatID, func(g domain.Goat) (domain.Goat, error) {
		rest, removed := without(g.MilkProduction, recordID, func(m domain.MilkRecord) uuid.UUID { return m.ID })
		if !removed {
			return g, domain.ErrNotFound
		}
		g.MilkProduction = rest
		return g, nil
	})
	if err != nil {
		return domain.Goat{}, fmt.Errorf("repo.GoatRepo.DeleteMilkRecord: %w", err)
	}
	return g, nil
}
