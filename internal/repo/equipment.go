package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
)

// EquipmentRepo defines the persistence operations for equipment and its
// maintenance log.
type EquipmentRepo interface {
	List(ctx context.Context) ([]domain.Equipment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Equipment, error)
	Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error)

	// Update keeps the id, DateCreated and maintenance history.
	Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// AddMaintenance appends rec and moves the last maintenance date to
	// rec.Date. The next maintenance date follows rec when rec sets one.
	AddMaintenance(ctx context.Context, equipmentID uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error)
}

type farmEquipmentRepo struct {
	c collection[domain.Equipment]
}

// NewEquipmentRepo returns an EquipmentRepo backed by the farm.
func NewEquipmentRepo(f *Farm) EquipmentRepo {
	return &farmEquipmentRepo{c: collection[domain.Equipment]{
		f:    f,
		slot: func(s *Snapshot) *[]domain.Equipment { return &s.Equipment },
		idOf: func(e domain.Equipment) uuid.UUID { return e.ID },
	}}
}

func (r *farmEquipmentRepo) List(_ context.Context) ([]domain.Equipment, error) {
	return r.c.list(), nil
}

func (r *farmEquipmentRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Equipment, error) {
	e, err := r.c.get(id)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("repo.EquipmentRepo.GetByID: %w", err)
	}
	return e, nil
}

func (r *farmEquipmentRepo) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	e.ID, e.DateCreated = r.c.f.newID()
	e.MaintenanceHistory = cloneNonNil(e.MaintenanceHistory)
	if err := r.c.create(ctx, e); err != nil {
		return domain.Equipment{}, fmt.Errorf("repo.EquipmentRepo.Create: %w", err)
	}
	return e, nil
}

func (r *farmEquipmentRepo) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	out, err := r.c.update(ctx, e.ID, func(prev domain.Equipment) (domain.Equipment, error) {
		e.DateCreated = prev.DateCreated
		e.MaintenanceHistory = prev.MaintenanceHistory
		return e, nil
	})
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("repo.EquipmentRepo.Update: %w", err)
	}
	return out, nil
}

func (r *farmEquipmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.EquipmentRepo.Delete: %w", err)
	}
	return nil
}

func (r *farmEquipmentRepo) AddMaintenance(ctx context.Context, equipmentID uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error) {
	rec.ID = uuid.New()
	out, err := r.c.update(ctx, equipmentID, func(e domain.Equipment) (domain.Equipment, error) {
		e.MaintenanceHistory = appendCopy(e.MaintenanceHistory, rec)
		last := rec.Date
		e.LastMaintenanceDate = &last
		if rec.NextMaintenanceDate != nil {
			next := *rec.NextMaintenanceDate
			e.NextMaintenanceDate = &next
		}
		return e, nil
	})
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("repo.EquipmentRepo.AddMaintenance: %w", err)
	}
	return out, nil
}
