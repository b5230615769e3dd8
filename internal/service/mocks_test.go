package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/advice"
	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
	"github.com/herdbook/herdbook/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones the test needs.

type mockGoatRepo struct {
	list                func(ctx context.Context) ([]domain.Goat, error)
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Goat, error)
	create              func(ctx context.Context, g domain.Goat) (domain.Goat, error)
	update              func(ctx context.Context, g domain.Goat) (domain.Goat, error)
	delete              func(ctx context.Context, id uuid.UUID) error
	addMedicalRecord    func(ctx context.Context, goatID uuid.UUID, rec domain.MedicalRecord) (domain.Goat, error)
	deleteMedicalRecord func(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)
	addMilkRecord       func(ctx context.Context, goatID uuid.UUID, rec domain.MilkRecord) (domain.Goat, error)
	deleteMilkRecord    func(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)
}

var _ repo.GoatRepo = (*mockGoatRepo)(nil)

func (m *mockGoatRepo) List(ctx context.Context) ([]domain.Goat, error) { return m.list(ctx) }
func (m *mockGoatRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Goat, error) {
	return m.getByID(ctx, id)
}
func (m *mockGoatRepo) Create(ctx context.Context, g domain.Goat) (domain.Goat, error) {
	return m.create(ctx, g)
}
func (m *mockGoatRepo) Update(ctx context.Context, g domain.Goat) (domain.Goat, error) {
	return m.update(ctx, g)
}
func (m *mockGoatRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }
func (m *mockGoatRepo) AddMedicalRecord(ctx context.Context, goatID uuid.UUID, rec domain.MedicalRecord) (domain.Goat, error) {
	return m.addMedicalRecord(ctx, goatID, rec)
}
func (m *mockGoatRepo) DeleteMedicalRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error) {
	return m.deleteMedicalRecord(ctx, goatID, recordID)
}
func (m *mockGoatRepo) AddMilkRecord(ctx context.Context, goatID uuid.UUID, rec domain.MilkRecord) (domain.Goat, error) {
	return m.addMilkRecord(ctx, goatID, rec)
}
func (m *mockGoatRepo) DeleteMilkRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error) {
	return m.deleteMilkRecord(ctx, goatID, recordID)
}

func goatsRepo(goats ...domain.Goat) *mockGoatRepo {
	return &mockGoatRepo{
		list: func(context.Context) ([]domain.Goat, error) {
			return append([]domain.Goat{}, goats...), nil
		},
		getByID: func(_ context.Context, id uuid.UUID) (domain.Goat, error) {
			for _, g := range goats {
				if g.ID == id {
					return g, nil
				}
			}
			return domain.Goat{}, domain.ErrNotFound
		},
	}
}

type mockFeedingRepo struct {
	list    func(ctx context.Context) ([]domain.FeedingSchedule, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.FeedingSchedule, error)
	create  func(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error)
	update  func(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

var _ repo.FeedingRepo = (*mockFeedingRepo)(nil)

func (m *mockFeedingRepo) List(ctx context.Context) ([]domain.FeedingSchedule, error) {
	return m.list(ctx)
}
func (m *mockFeedingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FeedingSchedule, error) {
	return m.getByID(ctx, id)
}
func (m *mockFeedingRepo) Create(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error) {
	return m.create(ctx, fs)
}
func (m *mockFeedingRepo) Update(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error) {
	return m.update(ctx, fs)
}
func (m *mockFeedingRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

type mockConsumptionRepo struct {
	list    func(ctx context.Context) ([]domain.FeedConsumption, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.FeedConsumption, error)
	create  func(ctx context.Context, fc domain.FeedConsumption) (domain.FeedConsumption, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

var _ repo.ConsumptionRepo = (*mockConsumptionRepo)(nil)

func (m *mockConsumptionRepo) List(ctx context.Context) ([]domain.FeedConsumption, error) {
	return m.list(ctx)
}
func (m *mockConsumptionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FeedConsumption, error) {
	return m.getByID(ctx, id)
}
func (m *mockConsumptionRepo) Create(ctx context.Context, fc domain.FeedConsumption) (domain.FeedConsumption, error) {
	return m.create(ctx, fc)
}
func (m *mockConsumptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockBreedingRepo struct {
	list    func(ctx context.Context) ([]domain.BreedingRecord, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error)
	create  func(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error)
	update  func(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

var _ repo.BreedingRepo = (*mockBreedingRepo)(nil)

func (m *mockBreedingRepo) List(ctx context.Context) ([]domain.BreedingRecord, error) {
	return m.list(ctx)
}
func (m *mockBreedingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error) {
	return m.getByID(ctx, id)
}
func (m *mockBreedingRepo) Create(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error) {
	return m.create(ctx, br)
}
func (m *mockBreedingRepo) Update(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error) {
	return m.update(ctx, br)
}
func (m *mockBreedingRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

type mockEquipmentRepo struct {
	list           func(ctx context.Context) ([]domain.Equipment, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Equipment, error)
	create         func(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	update         func(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	delete         func(ctx context.Context, id uuid.UUID) error
	addMaintenance func(ctx context.Context, id uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error)
}

var _ repo.EquipmentRepo = (*mockEquipmentRepo)(nil)

func (m *mockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) { return m.list(ctx) }
func (m *mockEquipmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Equipment, error) {
	return m.getByID(ctx, id)
}
func (m *mockEquipmentRepo) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return m.create(ctx, e)
}
func (m *mockEquipmentRepo) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return m.update(ctx, e)
}
func (m *mockEquipmentRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }
func (m *mockEquipmentRepo) AddMaintenance(ctx context.Context, id uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error) {
	return m.addMaintenance(ctx, id, rec)
}

type mockPastureRepo struct {
	list       func(ctx context.Context) ([]domain.Pasture, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Pasture, error)
	create     func(ctx context.Context, p domain.Pasture) (domain.Pasture, error)
	update     func(ctx context.Context, p domain.Pasture) (domain.Pasture, error)
	delete     func(ctx context.Context, id uuid.UUID) error
	addGrazing func(ctx context.Context, id uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error)
}

var _ repo.PastureRepo = (*mockPastureRepo)(nil)

func (m *mockPastureRepo) List(ctx context.Context) ([]domain.Pasture, error) { return m.list(ctx) }
func (m *mockPastureRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Pasture, error) {
	return m.getByID(ctx, id)
}
func (m *mockPastureRepo) Create(ctx context.Context, p domain.Pasture) (domain.Pasture, error) {
	return m.create(ctx, p)
}
func (m *mockPastureRepo) Update(ctx context.Context, p domain.Pasture) (domain.Pasture, error) {
	return m.update(ctx, p)
}
func (m *mockPastureRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }
func (m *mockPastureRepo) AddGrazing(ctx context.Context, id uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error) {
	return m.addGrazing(ctx, id, rec)
}

type mockSnapshotRepo struct {
	snapshot func() repo.Snapshot
	restore  func(ctx context.Context, s repo.Snapshot) error
}

var _ repo.SnapshotRepo = (*mockSnapshotRepo)(nil)

func (m *mockSnapshotRepo) Snapshot() repo.Snapshot { return m.snapshot() }
func (m *mockSnapshotRepo) Restore(ctx context.Context, s repo.Snapshot) error {
	return m.restore(ctx, s)
}

type mockAdvisor struct {
	ask     func(ctx context.Context, p advice.Prompt) string
	loading func() []string
}

var _ service.Advisor = (*mockAdvisor)(nil)

func (m *mockAdvisor) Ask(ctx context.Context, p advice.Prompt) string { return m.ask(ctx, p) }
func (m *mockAdvisor) Loading() []string                               { return m.loading() }

func allPages() domain.PaginationParams {
	return domain.PaginationParams{Page: 1, Limit: 100}
}
