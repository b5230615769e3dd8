package service

import (
	"context"
	"fmt"
	"time"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// HerdService derives herd-wide views: alerts, flattened logs, consumption
// averages and the breeding calendar. Nothing it returns is stored.
type HerdService struct {
	goats       repo.GoatRepo
	breeding    repo.BreedingRepo
	consumption repo.ConsumptionRepo
	now         func() time.Time
}

// NewHerdService constructs a HerdService. A nil now uses the wall clock.
func NewHerdService(goats repo.GoatRepo, breeding repo.BreedingRepo, consumption repo.ConsumptionRepo, now func() time.Time) *HerdService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &HerdService{goats: goats, breeding: breeding, consumption: consumption, now: now}
}

// Alerts returns health and vaccination alerts for the whole herd.
func (s *HerdService) Alerts(ctx context.Context) ([]domain.HealthAlert, error) {
	goats, err := s.goats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HerdService.Alerts: %w", err)
	}
	return domain.HealthAlerts(goats, s.now()), nil
}

// MedicalLog returns one page of the herd's medical records, newest first.
func (s *HerdService) MedicalLog(ctx context.Context, p domain.PaginationParams) ([]domain.MedicalLogEntry, int, error) {
	goats, err := s.goats.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.HerdService.MedicalLog: %w", err)
	}
	page, total := domain.Paginate(domain.MedicalLog(goats), p)
	return page, total, nil
}

// MilkLog returns one page of the herd's milk records, newest first.
func (s *HerdService) MilkLog(ctx context.Context, p domain.PaginationParams) ([]domain.MilkLogEntry, int, error) {
	goats, err := s.goats.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.HerdService.MilkLog: %w", err)
	}
	page, total := domain.Paginate(domain.MilkLog(goats), p)
	return page, total, nil
}

// Consumption returns the average consumption rate of every goat that has
// consumption records.
func (s *HerdService) Consumption(ctx context.Context) ([]domain.ConsumptionSummary, error) {
	goats, err := s.goats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HerdService.Consumption: %w", err)
	}
	records, err := s.consumption.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HerdService.Consumption: %w", err)
	}
	return domain.SummarizeConsumption(goats, records), nil
}

// UpcomingEvents returns expected births and pregnancy checks from today on.
func (s *HerdService) UpcomingEvents(ctx context.Context) ([]domain.BreedingEvent, error) {
	records, err := s.breeding.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HerdService.UpcomingEvents: %w", err)
	}
	goats, err := s.goats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HerdService.UpcomingEvents: %w", err)
	}
	return domain.UpcomingBreedingEvents(records, goats, s.now()), nil
}
