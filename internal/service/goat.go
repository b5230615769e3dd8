// Package service contains the business logic for Herdbook.
// Services validate inputs, apply defaults, sort listings and orchestrate repo
// calls. No storage code lives here; services depend on repo interfaces.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// GoatService implements business logic for goats and their medical and
// milk records.
type GoatService struct {
	goats repo.GoatRepo
}

// NewGoatService constructs a GoatService backed by the provided GoatRepo.
func NewGoatService(r repo.GoatRepo) *GoatService {
	return &GoatService{goats: r}
}

// List returns one page of goats ordered by name, plus the herd size.
func (s *GoatService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Goat, int, error) {
	goats, err := s.goats.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.GoatService.List: %w", err)
	}
	sort.SliceStable(goats, func(i, j int) bool { return goats[i].Name < goats[j].Name })
	page, total := domain.Paginate(goats, p)
	return page, total, nil
}

// GetByID returns domain.ErrNotFound if the goat does not exist.
func (s *GoatService) GetByID(ctx context.Context, id uuid.UUID) (domain.Goat, error) {
	g, err := s.goats.GetByID(ctx, id)
	if err != nil {
		return domain.Goat{}, fmt.Errorf("service.GoatService.GetByID: %w", err)
	}
	return g, nil
}

// Create validates and persists a new goat.
// Returns domain.ErrValidation if input violates business rules.
func (s *GoatService) Create(ctx context.Context, g domain.Goat) (domain.Goat, error) {
	g = goatDefaults(g)
	if err := validateGoat(g); err != nil {
		return domain.Goat{}, err
	}
	result, err := s.goats.Create(ctx, g)
	if err != nil {
		return domain.Goat{}, fmt.Errorf("service.GoatService.Create: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to an existing goat.
func (s *GoatService) Update(ctx context.Context, g domain.Goat) (domain.Goat, error) {
	g = goatDefaults(g)
	if err := validateGoat(g); err != nil {
		return domain.Goat{}, err
	}
	result, err := s.goats.Update(ctx, g)
	if err != nil {
		return domain.Goat{}, fmt.Errorf("service.GoatService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a goat. Breeding and feeding records that reference it
// are kept and will show the goat as "Unknown".
func (s *GoatService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.goats.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.GoatService.Delete: %w", err)
	}
	return nil
}

// AddMedicalRecord validates rec and appends it to the goat's history.
func (s *GoatService) AddMedicalRecord(ctx context.Context, goatID uuid.UUID, rec domain.MedicalRecord) (domain.Goat, error) {
	rec = medicalDefaults(rec)
	if err := validateMedical(rec); err != nil {
		return domain.Goat{}, err
	}
	g, err := s.goats.AddMedicalRecord(ctx, goatID, rec)
	if err != nil {
		return domain.Goat{}, fmt.Errorf("service.GoatService.AddMedicalRecord: %w", err)
	}
	return g, nil
}

func (s *GoatService) DeleteMedicalRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error) {
	g, err := s.goats.DeleteMedicalRecord(ctx, goatID, recordID)
	if err != nil {
		return domain.Goat{}, fmt.Errorf("service.GoatService.DeleteMedicalRecord: %w", err)
	}
	return g, nil
}

// AddMilkRecord validates rec and appends it to the goat's milk log.
// A missing date means now.
func (s *GoatService) AddMilkRecord(ctx context.Context, goatID uuid.UUID, rec domain.MilkRecord) (domain.Goat, error) {
	rec = milkDefaults(rec)
	if rec.Date.IsZero() {
		rec.Date = time.Now().UTC()
	}
	if err := validateMilk(rec); err != nil {
		return domain.Goat{}, err
	}
	g, err := s.goats.AddMilkRecord(ctx, goatID, rec)
	if err != nil {
		return domain.Goat{}, fmt.Errorf("service.GoatService.AddMilkRecord: %w", err)
	}
	return g, nil
}

func (s *GoatService) DeleteMilkRecord(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error) {
	g, err := s.goats.DeleteMilkRecord(ctx, goatID, recordID)
	if err != nil {
		return domain.Goat{}, fmt.Errorf("service.GoatService.DeleteMilkRecord: %w", err)
	}
	return g, nil
}

// MilkSummary returns totals, average and trend for one goat.
func (s *GoatService) MilkSummary(ctx context.Context, goatID uuid.UUID) (domain.MilkSummary, error) {
	g, err := s.goats.GetByID(ctx, goatID)
	if err != nil {
		return domain.MilkSummary{}, fmt.Errorf("service.GoatService.MilkSummary: %w", err)
	}
	return domain.SummarizeMilk(g), nil
}

func goatDefaults(g domain.Goat) domain.Goat {
	g.Name = strings.TrimSpace(g.Name)
	if g.Sex == "" {
		g.Sex = domain.SexFemale
	}
	if g.HealthStatus == "" {
		g.HealthStatus = domain.HealthHealthy
	}
	return g
}

// validateGoat enforces business rules common to both Create and Update.
func validateGoat(g domain.Goat) error {
	if g.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if g.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", domain.ErrValidation)
	}
	if !g.Sex.Valid() {
		return fmt.Errorf("%w: unknown sex %q", domain.ErrValidation, g.Sex)
	}
	if !g.HealthStatus.Valid() {
		return fmt.Errorf("%w: unknown health status %q", domain.ErrValidation, g.HealthStatus)
	}
	return nil
}

func medicalDefaults(rec domain.MedicalRecord) domain.MedicalRecord {
	if rec.Type == "" {
		rec.Type = domain.MedicalVaccination
	}
	return rec
}

func validateMedical(rec domain.MedicalRecord) error {
	if rec.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if !rec.Type.Valid() {
		return fmt.Errorf("%w: unknown medical record type %q", domain.ErrValidation, rec.Type)
	}
	return nil
}

func milkDefaults(rec domain.MilkRecord) domain.MilkRecord {
	if rec.Quality == "" {
		rec.Quality = domain.MilkGood
	}
	return rec
}

func validateMilk(rec domain.MilkRecord) error {
	if rec.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if rec.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", domain.ErrValidation)
	}
	if !rec.Quality.Valid() {
		return fmt.Errorf("%w: unknown milk quality %q", domain.ErrValidation, rec.Quality)
	}
	return nil
}
