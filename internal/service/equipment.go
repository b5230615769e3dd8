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

// EquipmentService implements business logic for equipment.
type EquipmentService struct {
	equipment repo.EquipmentRepo
}

// NewEquipmentService constructs an EquipmentService backed by the provided repo.
func NewEquipmentService(r repo.EquipmentRepo) *EquipmentService {
	return &EquipmentService{equipment: r}
}

// List returns one page of equipment ordered by name.
func (s *EquipmentService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Equipment, int, error) {
	items, err := s.equipment.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.EquipmentService.List: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	page, total := domain.Paginate(items, p)
	return page, total, nil
}

func (s *EquipmentService) GetByID(ctx context.Context, id uuid.UUID) (domain.Equipment, error) {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("service.EquipmentService.GetByID: %w", err)
	}
	return e, nil
}

func (s *EquipmentService) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	e = equipmentDefaults(e)
	if err := validateEquipment(e); err != nil {
		return domain.Equipment{}, err
	}
	result, err := s.equipment.Create(ctx, e)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("service.EquipmentService.Create: %w", err)
	}
	return result, nil
}

func (s *EquipmentService) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	e = equipmentDefaults(e)
	if err := validateEquipment(e); err != nil {
		return domain.Equipment{}, err
	}
	result, err := s.equipment.Update(ctx, e)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("service.EquipmentService.Update: %w", err)
	}
	return result, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.equipment.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EquipmentService.Delete: %w", err)
	}
	return nil
}

// AddMaintenance validates rec and logs it against the equipment.
func (s *EquipmentService) AddMaintenance(ctx context.Context, equipmentID uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error) {
	rec = maintenanceDefaults(rec)
	if err := validateMaintenance(rec); err != nil {
		return domain.Equipment{}, err
	}
	e, err := s.equipment.AddMaintenance(ctx, equipmentID, rec)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("service.EquipmentService.AddMaintenance: %w", err)
	}
	return e, nil
}

func equipmentDefaults(e domain.Equipment) domain.Equipment {
	e.Name = strings.TrimSpace(e.Name)
	if e.Type == "" {
		e.Type = domain.EquipmentFeeder
	}
	if e.Condition == "" {
		e.Condition = domain.ConditionGood
	}
	return e
}

func validateEquipment(e domain.Equipment) error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if e.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown equipment type %q", domain.ErrValidation, e.Type)
	}
	if !e.Condition.Valid() {
		return fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, e.Condition)
	}
	return nil
}

func maintenanceDefaults(rec domain.MaintenanceRecord) domain.MaintenanceRecord {
	if rec.Type == "" {
		rec.Type = domain.MaintenanceRoutine
	}
	return rec
}

func validateMaintenance(rec domain.MaintenanceRecord) error {
	switch {
	case rec.Date.IsZero():
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	case !rec.Type.Valid():
		return fmt.Errorf("%w: unknown maintenance type %q", domain.ErrValidation, rec.Type)
	case rec.Cost < 0:
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	return nil
}
