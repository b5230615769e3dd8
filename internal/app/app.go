// Package app wires configuration into the store, repositories, services and
// advice provider shared by the API server and herdctl.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/herdbook/herdbook/internal/advice"
	"github.com/herdbook/herdbook/internal/config"
	"github.com/herdbook/herdbook/internal/handler"
	"github.com/herdbook/herdbook/internal/kvstore"
	"github.com/herdbook/herdbook/internal/repo"
	"github.com/herdbook/herdbook/internal/service"
)

// App holds the long-lived dependencies built from a Config.
type App struct {
	Store    kvstore.Store
	Farm     *repo.Farm
	Advisor  *advice.Provider
	Services handler.Services
}

// New opens the configured store, loads the farm collections and builds every
// service. reg receives the advice metrics; nil leaves them unregistered.
// The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config, log *slog.Logger, reg prometheus.Registerer) (*App, error) {
	store, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("app.New: open store: %w", err)
	}

	farm := repo.NewFarm(store, log)
	if err := farm.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("app.New: %w", err)
	}

	completer, err := NewCompleter(ctx, cfg.Advice)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("app.New: %w", err)
	}
	advisor := advice.NewProvider(completer, log, advice.NewMetrics(reg))

	goats := repo.NewGoatRepo(farm)
	feeding := repo.NewFeedingRepo(farm)
	consumption := repo.NewConsumptionRepo(farm)
	breeding := repo.NewBreedingRepo(farm)
	equipment := repo.NewEquipmentRepo(farm)
	pastures := repo.NewPastureRepo(farm)

	return &App{
		Store:   store,
		Farm:    farm,
		Advisor: advisor,
		Services: handler.Services{
			Goats:     service.NewGoatService(goats),
			Feeding:   service.NewFeedingService(feeding, consumption),
			Breeding:  service.NewBreedingService(breeding),
			Equipment: service.NewEquipmentService(equipment),
			Pastures:  service.NewPastureService(pastures),
			Herd:      service.NewHerdService(goats, breeding, consumption, nil),
			Advice:    service.NewAdviceService(goats, pastures, equipment, advisor),
			Export:    service.NewExportService(goats, farm),
		},
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// NewCompleter returns the chat-completion client named by cfg.Provider.
func NewCompleter(ctx context.Context, cfg config.AdviceConfig) (advice.Completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := advice.NewGeminiClient(ctx, advice.GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderOpenAI, "":
		return advice.NewOpenAIClient(advice.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	default:
		return nil, fmt.Errorf("unknown advice provider %q", cfg.Provider)
	}
}
