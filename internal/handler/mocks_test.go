package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/herdbook/herdbook/internal/advice"
	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/handler"
	"github.com/herdbook/herdbook/internal/repo"
)

// Mocks below are test doubles for the handler servicer interfaces.
// Set only the method fields your test needs.

// ---- goats ----

type mockGoatServicer struct {
	list                func(ctx context.Context, p domain.PaginationParams) ([]domain.Goat, int, error)
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Goat, error)
	create              func(ctx context.Context, g domain.Goat) (domain.Goat, error)
	update              func(ctx context.Context, g domain.Goat) (domain.Goat, error)
	delete              func(ctx context.Context, id uuid.UUID) error
	addMedicalRecord    func(ctx context.Context, goatID uuid.UUID, rec domain.MedicalRecord) (domain.Goat, error)
	deleteMedicalRecord func(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)
	addMilkRecord       func(ctx context.Context, goatID uuid.UUID, rec domain.MilkRecord) (domain.Goat, error)
	deleteMilkRecord    func(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)
	milkSummary         func(ctx context.Context, goatID uuid.UUID) (domain.MilkSummary, error)
}

var _ handler.GoatServicer = (*mockGoatServicer)(nil)

func (m *mockGoatServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Goat, int, error) {
	return m.list(ctx, p)
}
func (m *mockGoatServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Goat, error) {
	return m.getByID(ctx, id)
}
func (m *mockGoatServicer) Create(ctx context.Context, g domain.Goat) (domain.Goat, error) {
	return m.create(ctx, g)
}
func (m *mockGoatServicer) Update(ctx context.Context, g domain.Goat) (domain.Goat, error) {
	return m.update(ctx, g)
}
func (m *mockGoatServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockGoatServicer) AddMedicalRecord(ctx context.Context, goatID uuid.UUID, rec domain.MedicalRecord) (domain.Goat, error) {
	return m.addMedicalRecord(ctx, goatID, rec)
}
func (m *mockGoatServicer) DeleteMedicalRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error) {
	return m.deleteMedicalRecord(ctx, goatID, recordID)
}
func (m *mockGoatServicer) AddMilkRecord(ctx context.Context, goatID uuid.UUID, rec domain.MilkRecord) (domain.Goat, error) {
	return m.addMilkRecord(ctx, goatID, rec)
}
func (m *mockGoatServicer) DeleteMilkRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error) {
	return m.deleteMilkRecord(ctx, goatID, recordID)
}
func (m *mockGoatServicer) MilkSummary(ctx context.Context, goatID uuid.UUID) (domain.MilkSummary, error) {
	return m.milkSummary(ctx, goatID)
}

// ---- feeding ----

type mockFeedingServicer struct {
	list              func(ctx context.Context, p domain.PaginationParams) ([]domain.FeedingSchedule, int, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.FeedingSchedule, error)
	create            func(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error)
	update            func(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	listConsumption   func(ctx context.Context, p domain.PaginationParams) ([]domain.FeedConsumption, int, error)
	getConsumption    func(ctx context.Context, id uuid.UUID) (domain.FeedConsumption, error)
	logConsumption    func(ctx context.Context, fc domain.FeedConsumption) (domain.FeedConsumption, error)
	deleteConsumption func(ctx context.Context, id uuid.UUID) error
}

var _ handler.FeedingServicer = (*mockFeedingServicer)(nil)

func (m *mockFeedingServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.FeedingSchedule, int, error) {
	return m.list(ctx, p)
}
func (m *mockFeedingServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.FeedingSchedule, error) {
	return m.getByID(ctx, id)
}
func (m *mockFeedingServicer) Create(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error) {
	return m.create(ctx, fs)
}
func (m *mockFeedingServicer) Update(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error) {
	return m.update(ctx, fs)
}
func (m *mockFeedingServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockFeedingServicer) ListConsumption(ctx context.Context, p domain.PaginationParams) ([]domain.FeedConsumption, int, error) {
	return m.listConsumption(ctx, p)
}
func (m *mockFeedingServicer) GetConsumption(ctx context.Context, id uuid.UUID) (domain.FeedConsumption, error) {
	return m.getConsumption(ctx, id)
}
func (m *mockFeedingServicer) LogConsumption(ctx context.Context, fc domain.FeedConsumption) (domain.FeedConsumption, error) {
	return m.logConsumption(ctx, fc)
}
func (m *mockFeedingServicer) DeleteConsumption(ctx context.Context, id uuid.UUID) error {
	return m.deleteConsumption(ctx, id)
}

// ---- breeding ----

type mockBreedingServicer struct {
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.BreedingRecord, int, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error)
	create  func(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error)
	update  func(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

var _ handler.BreedingServicer = (*mockBreedingServicer)(nil)

func (m *mockBreedingServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.BreedingRecord, int, error) {
	return m.list(ctx, p)
}
func (m *mockBreedingServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error) {
	return m.getByID(ctx, id)
}
func (m *mockBreedingServicer) Create(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error) {
	return m.create(ctx, br)
}
func (m *mockBreedingServicer) Update(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error) {
	return m.update(ctx, br)
}
func (m *mockBreedingServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// ---- equipment ----

type mockEquipmentServicer struct {
	list           func(ctx context.Context, p domain.PaginationParams) ([]domain.Equipment, int, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Equipment, error)
	create         func(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	update         func(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	delete         func(ctx context.Context, id uuid.UUID) error
	addMaintenance func(ctx context.Context, id uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error)
}

var _ handler.EquipmentServicer = (*mockEquipmentServicer)(nil)

func (m *mockEquipmentServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Equipment, int, error) {
	return m.list(ctx, p)
}
func (m *mockEquipmentServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Equipment, error) {
	return m.getByID(ctx, id)
}
func (m *mockEquipmentServicer) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return m.create(ctx, e)
}
func (m *mockEquipmentServicer) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return m.update(ctx, e)
}
func (m *mockEquipmentServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockEquipmentServicer) AddMaintenance(ctx context.Context, id uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error) {
	return m.addMaintenance(ctx, id, rec)
}

// ---- pastures ----

type mockPastureServicer struct {
	list       func(ctx context.Context, p domain.PaginationParams) ([]domain.Pasture, int, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Pasture, error)
	create     func(ctx context.Context, p domain.Pasture) (domain.Pasture, error)
	update     func(ctx context.Context, p domain.Pasture) (domain.Pasture, error)
	delete     func(ctx context.Context, id uuid.UUID) error
	addGrazing func(ctx context.Context, id uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error)
}

var _ handler.PastureServicer = (*mockPastureServicer)(nil)

func (m *mockPastureServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Pasture, int, error) {
	return m.list(ctx, p)
}
func (m *mockPastureServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Pasture, error) {
	return m.getByID(ctx, id)
}
func (m *mockPastureServicer) Create(ctx context.Context, p domain.Pasture) (domain.Pasture, error) {
	return m.create(ctx, p)
}
func (m *mockPastureServicer) Update(ctx context.Context, p domain.Pasture) (domain.Pasture, error) {
	return m.update(ctx, p)
}
func (m *mockPastureServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockPastureServicer) AddGrazing(ctx context.Context, id uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error) {
	return m.addGrazing(ctx, id, rec)
}

// ---- herd ----

type mockHerdServicer struct {
	alerts         func(ctx context.Context) ([]domain.HealthAlert, error)
	medicalLog     func(ctx context.Context, p domain.PaginationParams) ([]domain.MedicalLogEntry, int, error)
	milkLog        func(ctx context.Context, p domain.PaginationParams) ([]domain.MilkLogEntry, int, error)
	consumption    func(ctx context.Context) ([]domain.ConsumptionSummary, error)
	upcomingEvents func(ctx context.Context) ([]domain.BreedingEvent, error)
}

var _ handler.HerdServicer = (*mockHerdServicer)(nil)

func (m *mockHerdServicer) Alerts(ctx context.Context) ([]domain.HealthAlert, error) {
	return m.alerts(ctx)
}
func (m *mockHerdServicer) MedicalLog(ctx context.Context, p domain.PaginationParams) ([]domain.MedicalLogEntry, int, error) {
	return m.medicalLog(ctx, p)
}
func (m *mockHerdServicer) MilkLog(ctx context.Context, p domain.PaginationParams) ([]domain.MilkLogEntry, int, error) {
	return m.milkLog(ctx, p)
}
func (m *mockHerdServicer) Consumption(ctx context.Context) ([]domain.ConsumptionSummary, error) {
	return m.consumption(ctx)
}
func (m *mockHerdServicer) UpcomingEvents(ctx context.Context) ([]domain.BreedingEvent, error) {
	return m.upcomingEvents(ctx)
}

// ---- advice ----

type mockAdviceServicer struct {
	goatAdvice      func(ctx context.Context, goatID uuid.UUID, kind advice.Kind) (domain.Advice, error)
	healthAdvice    func(ctx context.Context, goatID uuid.UUID, symptoms string) (domain.Advice, error)
	pastureAdvice   func(ctx context.Context, id uuid.UUID) (domain.Advice, error)
	equipmentAdvice func(ctx context.Context, id uuid.UUID) (domain.Advice, error)
	question        func(ctx context.Context, q string) (domain.Advice, error)
	tasks           func() []string
}

var _ handler.AdviceServicer = (*mockAdviceServicer)(nil)

func (m *mockAdviceServicer) GoatAdvice(ctx context.Context, goatID uuid.UUID, kind advice.Kind) (domain.Advice, error) {
	return m.goatAdvice(ctx, goatID, kind)
}
func (m *mockAdviceServicer) HealthAdvice(ctx context.Context, goatID uuid.UUID, symptoms string) (domain.Advice, error) {
	return m.healthAdvice(ctx, goatID, symptoms)
}
func (m *mockAdviceServicer) PastureAdvice(ctx context.Context, id uuid.UUID) (domain.Advice, error) {
	return m.pastureAdvice(ctx, id)
}
func (m *mockAdviceServicer) EquipmentAdvice(ctx context.Context, id uuid.UUID) (domain.Advice, error) {
	return m.equipmentAdvice(ctx, id)
}
func (m *mockAdviceServicer) Question(ctx context.Context, q string) (domain.Advice, error) {
	return m.question(ctx, q)
}
func (m *mockAdviceServicer) Tasks() []string { return m.tasks() }

// ---- export ----

type mockExportServicer struct {
	milkRows func(ctx context.Context) ([]domain.ExportRow, error)
	backup   func(ctx context.Context) repo.Snapshot
	restore  func(ctx context.Context, b repo.Snapshot) error
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

func (m *mockExportServicer) MilkRows(ctx context.Context) ([]domain.ExportRow, error) {
	return m.milkRows(ctx)
}
func (m *mockExportServicer) Backup(ctx context.Context) repo.Snapshot { return m.backup(ctx) }
func (m *mockExportServicer) Restore(ctx context.Context, b repo.Snapshot) error {
	return m.restore(ctx, b)
}

// ---- helpers ---------------------------------------------------------------

// serve routes one request through a Server built from svc, the same way
// main.go wires it in production.
func serve(t *testing.T, svc handler.Services, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.NewServer(svc, nil).Routes().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorBody mirrors the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	return e
}

// listBody mirrors the paginated list envelope.
type listBody[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"pagination"`
}
