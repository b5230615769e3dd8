package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdbook/herdbook/internal/advice"
	"github.com/herdbook/herdbook/internal/app"
	"github.com/herdbook/herdbook/internal/config"
	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/handler"
	"github.com/herdbook/herdbook/internal/kvstore"
)

func memoryConfig() config.Config {
	return config.Config{
		Store:  kvstore.Config{Driver: kvstore.DriverMemory},
		Advice: config.AdviceConfig{Provider: config.ProviderOpenAI},
	}
}

// TestNew_wiresServicesEndToEnd drives a request through the router built
// from the wired services, backed by the in-memory store.
func TestNew_wiresServicesEndToEnd(t *testing.T) {
	a, err := app.New(context.Background(), memoryConfig(), nil, prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	g, err := a.Services.Goats.Create(context.Background(), domain.Goat{Name: "Clover"})
	require.NoError(t, err)

	router := handler.NewServer(a.Services, nil).Routes()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/goats/"+g.ID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Clover"`)

	require.Len(t, a.Farm.Snapshot().Goats, 1)
}

func TestNewCompleter(t *testing.T) {
	c, err := app.NewCompleter(context.Background(), config.AdviceConfig{Provider: config.ProviderOpenAI})
	require.NoError(t, err)
	assert.IsType(t, &advice.OpenAIClient{}, c)

	_, err = app.NewCompleter(context.Background(), config.AdviceConfig{Provider: config.ProviderGemini})
	assert.Error(t, err)

	_, err = app.NewCompleter(context.Background(), config.AdviceConfig{Provider: "carrier-pigeon"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "carrier-pigeon"))
}
