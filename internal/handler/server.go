// Package handler implements the HTTP handlers for the Herdbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (goat.go, feeding.go, etc.) but share the same Server struct so they
// can reach its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/advice"
	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// GoatServicer defines the goat operations the handlers depend on.
// Interfaces live here, in the consumer package, so tests can inject mocks.
type GoatServicer interface {
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Goat, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Goat, error)
	Create(ctx context.Context, g domain.Goat) (domain.Goat, error)
	Update(ctx context.Context, g domain.Goat) (domain.Goat, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMedicalRecord(ctx context.Context, goatID uuid.UUID, rec domain.MedicalRecord) (domain.Goat, error)
	DeleteMedicalRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)
	AddMilkRecord(ctx context.Context, goatID uuid.UUID, rec domain.MilkRecord) (domain.Goat, error)
	DeleteMilkRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)
	MilkSummary(ctx context.Context, goatID uuid.UUID) (domain.MilkSummary, error)
}

// FeedingServicer covers feeding schedules and consumption records.
type FeedingServicer interface {
	List(ctx context.Context, p domain.PaginationParams) ([]domain.FeedingSchedule, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.FeedingSchedule, error)
	Create(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error)
	Update(ctx context.Context, fs domain.FeedingSchedule) (domain.FeedingSchedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListConsumption(ctx context.Context, p domain.PaginationParams) ([]domain.FeedConsumption, int, error)
	GetConsumption(ctx context.Context, id uuid.UUID) (domain.FeedConsumption, error)
	LogConsumption(ctx context.Context, fc domain.FeedConsumption) (domain.FeedConsumption, error)
	DeleteConsumption(ctx context.Context, id uuid.UUID) error
}

type BreedingServicer interface {
	List(ctx context.Context, p domain.PaginationParams) ([]domain.BreedingRecord, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.BreedingRecord, error)
	Create(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error)
	Update(ctx context.Context, br domain.BreedingRecord) (domain.BreedingRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EquipmentServicer interface {
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Equipment, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Equipment, error)
	Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMaintenance(ctx context.Context, equipmentID uuid.UUID, rec domain.MaintenanceRecord) (domain.Equipment, error)
}

type PastureServicer interface {
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Pasture, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Pasture, error)
	Create(ctx context.Context, p domain.Pasture) (domain.Pasture, error)
	Update(ctx context.Context, p domain.Pasture) (domain.Pasture, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddGrazing(ctx context.Context, pastureID uuid.UUID, rec domain.GrazingRecord) (domain.Pasture, error)
}

// HerdServicer provides the derived, herd-wide views.
type HerdServicer interface {
	Alerts(ctx context.Context) ([]domain.HealthAlert, error)
	MedicalLog(ctx context.Context, p domain.PaginationParams) ([]domain.MedicalLogEntry, int, error)
	MilkLog(ctx context.Context, p domain.PaginationParams) ([]domain.MilkLogEntry, int, error)
	Consumption(ctx context.Context) ([]domain.ConsumptionSummary, error)
	UpcomingEvents(ctx context.Context) ([]domain.BreedingEvent, error)
}

type AdviceServicer interface {
	GoatAdvice(ctx context.Context, goatID uuid.UUID, kind advice.Kind) (domain.Advice, error)
	HealthAdvice(ctx context.Context, goatID uuid.UUID, symptoms string) (domain.Advice, error)
	PastureAdvice(ctx context.Context, pastureID uuid.UUID) (domain.Advice, error)
	EquipmentAdvice(ctx context.Context, equipmentID uuid.UUID) (domain.Advice, error)
	Question(ctx context.Context, q string) (domain.Advice, error)
	Tasks() []string
}

// ExportServicer provides the milk export and full backups.
type ExportServicer interface {
	MilkRows(ctx context.Context) ([]domain.ExportRow, error)
	Backup(ctx context.Context) repo.Snapshot
	Restore(ctx context.Context, b repo.Snapshot) error
}

// Services bundles the dependencies of Server. Nil services leave their
// routes unregistered.
type Services struct {
	Goats     GoatServicer
	Feeding   FeedingServicer
	Breeding  BreedingServicer
	Equipment EquipmentServicer
	Pastures  PastureServicer
	Herd      HerdServicer
	Advice    AdviceServicer
	Export    ExportServicer
}

// Server holds the services every handler method uses.
type Server struct {
	svc Services
	log *slog.Logger
}

// NewServer constructs the Server. A nil log uses slog.Default.
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, log: log}
}

// NewHealthHandler returns a Server with no services, serving /healthz only.
func NewHealthHandler() *Server {
	return NewServer(Services{}, nil)
}

// Routes returns a chi router with every route whose service is set.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	if s.svc.Goats != nil {
		r.Route("/goats", func(r chi.Router) {
			r.Get("/", s.ListGoats)
			r.Post("/", s.CreateGoat)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetGoat)
				r.Put("/", s.UpdateGoat)
				r.Delete("/", s.DeleteGoat)
				r.Post("/medical", s.AddMedicalRecord)
				r.Delete("/medical/{recordID}", s.DeleteMedicalRecord)
				r.Post("/milk", s.AddMilkRecord)
				r.Delete("/milk/{recordID}", s.DeleteMilkRecord)
				r.Get("/milk/summary", s.GetMilkSummary)
			})
		})
	}
	if s.svc.Feeding != nil {
		r.Route("/feeding", func(r chi.Router) {
			r.Get("/", s.ListFeeding)
			r.Post("/", s.CreateFeeding)
			r.Get("/{id}", s.GetFeeding)
			r.Put("/{id}", s.UpdateFeeding)
			r.Delete("/{id}", s.DeleteFeeding)
		})
		r.Route("/consumption", func(r chi.Router) {
			r.Get("/", s.ListConsumption)
			r.Post("/", s.LogConsumption)
			r.Get("/{id}", s.GetConsumption)
			r.Delete("/{id}", s.DeleteConsumption)
		})
	}
	if s.svc.Breeding != nil {
		r.Route("/breeding", func(r chi.Router) {
			r.Get("/", s.ListBreeding)
			r.Post("/", s.CreateBreeding)
			if s.svc.Herd != nil {
				r.Get("/upcoming", s.GetUpcomingEvents)
			}
			r.Get("/{id}", s.GetBreeding)
			r.Put("/{id}", s.UpdateBreeding)
			r.Delete("/{id}", s.DeleteBreeding)
		})
	}
	if s.svc.Equipment != nil {
		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", s.ListEquipment)
			r.Post("/", s.CreateEquipment)
			r.Get("/{id}", s.GetEquipment)
			r.Put("/{id}", s.UpdateEquipment)
			r.Delete("/{id}", s.DeleteEquipment)
			r.Post("/{id}/maintenance", s.AddMaintenance)
		})
	}
	if s.svc.Pastures != nil {
		r.Route("/pastures", func(r chi.Router) {
			r.Get("/", s.ListPastures)
			r.Post("/", s.CreatePasture)
			r.Get("/{id}", s.GetPasture)
			r.Put("/{id}", s.UpdatePasture)
			r.Delete("/{id}", s.DeletePasture)
			r.Post("/{id}/grazing", s.AddGrazing)
		})
	}
	if s.svc.Herd != nil {
		r.Route("/herd", func(r chi.Router) {
			r.Get("/alerts", s.GetAlerts)
			r.Get("/medical", s.GetMedicalLog)
			r.Get("/milk", s.GetMilkLog)
			r.Get("/consumption", s.GetConsumptionSummary)
		})
	}
	if s.svc.Advice != nil {
		r.Route("/advice", func(r chi.Router) {
			r.Post("/goats/{id}/health", s.PostHealthAdvice)
			r.Post("/goats/{id}/{kind}", s.PostGoatAdvice)
			r.Post("/pastures/{id}", s.PostPastureAdvice)
			r.Post("/equipment/{id}", s.PostEquipmentAdvice)
			r.Post("/questions", s.PostQuestion)
			r.Get("/tasks", s.GetAdviceTasks)
		})
	}
	if s.svc.Export != nil {
		r.Get("/export", s.GetExport)
		r.Get("/backup", s.GetBackup)
		r.Post("/restore", s.PostRestore)
	}
	return r
}
