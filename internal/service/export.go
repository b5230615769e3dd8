package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// ExportService produces the flat milk export and full-farm backups.
type ExportService struct {
	goats     repo.GoatRepo
	snapshots repo.SnapshotRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(goats repo.GoatRepo, snapshots repo.SnapshotRepo) *ExportService {
	return &ExportService{goats: goats, snapshots: snapshots}
}

// MilkRows returns one ExportRow per milk record, ordered by goat name and
// then by date, oldest first.
func (s *ExportService) MilkRows(ctx context.Context) ([]domain.ExportRow, error) {
	goats, err := s.goats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.MilkRows: %w", err)
	}
	sort.SliceStable(goats, func(i, j int) bool { return goats[i].Name < goats[j].Name })

	rows := []domain.ExportRow{}
	for _, g := range goats {
		records := append([]domain.MilkRecord(nil), g.MilkProduction...)
		sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
		for _, r := range records {
			rows = append(rows, domain.ExportRow{
				GoatID:   g.ID,
				GoatName: g.Name,
				Breed:    g.Breed,
				Date:     r.Date,
				Quantity: r.Quantity,
				Quality:  r.Quality,
				Notes:    r.Notes,
			})
		}
	}
	return rows, nil
}

// Backup returns a copy of every collection.
func (s *ExportService) Backup(_ context.Context) repo.Snapshot {
	return s.snapshots.Snapshot()
}

// Restore replaces every collection with b. Every record passes the same
// defaults and validation as Create, and ids must be set and unique within
// their collection, so nothing is stored that the API would reject. Nothing
// is written unless the whole backup is valid.
func (s *ExportService) Restore(ctx context.Context, b repo.Snapshot) error {
	var err error
	if b.Goats, err = restoreAll("goats", b.Goats, func(g domain.Goat) uuid.UUID { return g.ID }, restoreGoat); err != nil {
		return err
	}
	if b.FeedingSchedules, err = restoreAll("feeding_schedules", b.FeedingSchedules,
		func(fs domain.FeedingSchedule) uuid.UUID { return fs.ID }, checked(feedingDefaults, validateFeeding)); err != nil {
		return err
	}
	if b.BreedingRecords, err = restoreAll("breeding_records", b.BreedingRecords,
		func(br domain.BreedingRecord) uuid.UUID { return br.ID }, restoreBreeding); err != nil {
		return err
	}
	if b.Equipment, err = restoreAll("equipment", b.Equipment, func(e domain.Equipment) uuid.UUID { return e.ID }, restoreEquipment); err != nil {
		return err
	}
	if b.Pastures, err = restoreAll("pastures", b.Pastures, func(p domain.Pasture) uuid.UUID { return p.ID }, restorePasture); err != nil {
		return err
	}
	if b.FeedConsumption, err = restoreAll("feed_consumption", b.FeedConsumption,
		func(fc domain.FeedConsumption) uuid.UUID { return fc.ID }, checked(consumptionDefaults, validateConsumption)); err != nil {
		return err
	}

	if err := s.snapshots.Restore(ctx, b); err != nil {
		return fmt.Errorf("service.ExportService.Restore: %w", err)
	}
	return nil
}

// restoreAll runs fix over items, rejecting missing or duplicate ids.
// Errors name the offending element, e.g. "goats[2]: milk_production[0]".
func restoreAll[T any](path string, items []T, idOf func(T) uuid.UUID, fix func(T) (T, error)) ([]T, error) {
	seen := make(map[uuid.UUID]struct{}, len(items))
	out := make([]T, 0, len(items))
	for i, it := range items {
		at := fmt.Sprintf("%s[%d]", path, i)
		id := idOf(it)
		if id == uuid.Nil {
			return nil, fmt.Errorf("%w: %s: id is required", domain.ErrValidation, at)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate id %s", domain.ErrValidation, at, id)
		}
		seen[id] = struct{}{}

		fixed, err := fix(it)
		if err != nil {
			return nil, restoreError(at, err)
		}
		out = append(out, fixed)
	}
	return out, nil
}

// checked pairs a defaults func with its validator.
func checked[T any](defaults func(T) T, validate func(T) error) func(T) (T, error) {
	return func(v T) (T, error) {
		v = defaults(v)
		if err := validate(v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// restoreError prefixes a validation error with the element path, keeping
// it matchable as domain.ErrValidation.
func restoreError(at string, err error) error {
	if !errors.Is(err, domain.ErrValidation) {
		return err
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		msg = msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return fmt.Errorf("%w: %s: %s", domain.ErrValidation, at, msg)
}

func restoreGoat(g domain.Goat) (domain.Goat, error) {
	g = goatDefaults(g)
	if err := validateGoat(g); err != nil {
		return g, err
	}
	var err error
	if g.MedicalHistory, err = restoreAll("medical_history", g.MedicalHistory,
		func(r domain.MedicalRecord) uuid.UUID { return r.ID }, checked(medicalDefaults, validateMedical)); err != nil {
		return g, err
	}
	if g.MilkProduction, err = restoreAll("milk_production", g.MilkProduction,
		func(r domain.MilkRecord) uuid.UUID { return r.ID }, checked(milkDefaults, validateMilk)); err != nil {
		return g, err
	}
	return g, nil
}

func restoreBreeding(br domain.BreedingRecord) (domain.BreedingRecord, error) {
	br = breedingDefaults(br)
	if err := validateBreeding(br); err != nil {
		return br, err
	}
	if br.ExpectedBirthDate.IsZero() {
		br.ExpectedBirthDate = domain.ExpectedBirthDate(br.MatingDate)
	}
	return br, nil
}

func restoreEquipment(e domain.Equipment) (domain.Equipment, error) {
	e = equipmentDefaults(e)
	if err := validateEquipment(e); err != nil {
		return e, err
	}
	var err error
	e.MaintenanceHistory, err = restoreAll("maintenance_history", e.MaintenanceHistory,
		func(r domain.MaintenanceRecord) uuid.UUID { return r.ID }, checked(maintenanceDefaults, validateMaintenance))
	return e, err
}

func restorePasture(p domain.Pasture) (domain.Pasture, error) {
	p = pastureDefaults(p)
	if err := validatePasture(p); err != nil {
		return p, err
	}
	var err error
	p.GrazingHistory, err = restoreAll("grazing_history", p.GrazingHistory,
		func(r domain.GrazingRecord) uuid.UUID { return r.ID }, checked(grazingDefaults, validateGrazing))
	return p, err
}
