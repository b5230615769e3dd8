package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herdbook/herdbook/internal/advice"
	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/handler"
)

// ---- herd ------------------------------------------------------------------

func TestGetAlerts_200(t *testing.T) {
	svc := &mockHerdServicer{
		alerts: func(context.Context) ([]domain.HealthAlert, error) {
			return []domain.HealthAlert{{GoatName: "Clover"}}, nil
		},
	}

	rec := serve(t, handler.Services{Herd: svc}, http.MethodGet, "/herd/alerts", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []domain.HealthAlert
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Clover", resp[0].GoatName)
}

func TestGetMedicalLog_PassesPagination(t *testing.T) {
	var params domain.PaginationParams
	svc := &mockHerdServicer{
		medicalLog: func(_ context.Context, p domain.PaginationParams) ([]domain.MedicalLogEntry, int, error) {
			params = p
			return []domain.MedicalLogEntry{}, 0, nil
		},
	}

	rec := serve(t, handler.Services{Herd: svc}, http.MethodGet, "/herd/medical?page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 5}, params)
}

func TestGetMilkLog_200(t *testing.T) {
	svc := &mockHerdServicer{
		milkLog: func(context.Context, domain.PaginationParams) ([]domain.MilkLogEntry, int, error) {
			return []domain.MilkLogEntry{{GoatName: "Mint"}}, 1, nil
		},
	}

	rec := serve(t, handler.Services{Herd: svc}, http.MethodGet, "/herd/milk", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp listBody[domain.MilkLogEntry]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Pagination.Total)
}

func TestGetConsumptionSummary_200(t *testing.T) {
	svc := &mockHerdServicer{
		consumption: func(context.Context) ([]domain.ConsumptionSummary, error) {
			return []domain.ConsumptionSummary{}, nil
		},
	}

	rec := serve(t, handler.Services{Herd: svc}, http.MethodGet, "/herd/consumption", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

// ---- advice ----------------------------------------------------------------

func TestPostGoatAdvice_PassesKind(t *testing.T) {
	id := uuid.New()
	var kind advice.Kind
	svc := &mockAdviceServicer{
		goatAdvice: func(_ context.Context, goatID uuid.UUID, k advice.Kind) (domain.Advice, error) {
			assert.Equal(t, id, goatID)
			kind = k
			return domain.Advice{TaskID: "feeding-" + goatID.String(), Kind: string(k), Answer: "More hay."}, nil
		},
	}

	rec := serve(t, handler.Services{Advice: svc}, http.MethodPost, "/advice/goats/"+id.String()+"/feeding", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, advice.KindFeeding, kind)
	var resp domain.Advice
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "More hay.", resp.Answer)
}

func TestPostGoatAdvice_422_UnknownKind(t *testing.T) {
	svc := &mockAdviceServicer{
		goatAdvice: func(_ context.Context, _ uuid.UUID, k advice.Kind) (domain.Advice, error) {
			return domain.Advice{}, fmt.Errorf("%w: unsupported advice kind %q", domain.ErrValidation, k)
		},
	}

	rec := serve(t, handler.Services{Advice: svc}, http.MethodPost, "/advice/goats/"+uuid.New().String()+"/horoscope", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPostHealthAdvice_RoutesBeforeKind(t *testing.T) {
	var symptoms string
	svc := &mockAdviceServicer{
		healthAdvice: func(_ context.Context, _ uuid.UUID, s string) (domain.Advice, error) {
			symptoms = s
			return domain.Advice{Kind: "health"}, nil
		},
	}

	rec := serve(t, handler.Services{Advice: svc}, http.MethodPost, "/advice/goats/"+uuid.New().String()+"/health",
		jsonBody(t, map[string]string{"symptoms": "coughing"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "coughing", symptoms)
}

func TestPostPastureAdvice_404(t *testing.T) {
	svc := &mockAdviceServicer{
		pastureAdvice: func(context.Context, uuid.UUID) (domain.Advice, error) {
			return domain.Advice{}, domain.ErrNotFound
		},
	}

	rec := serve(t, handler.Services{Advice: svc}, http.MethodPost, "/advice/pastures/"+uuid.New().String(), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "pasture not found", decodeError(t, rec).Error.Message)
}

func TestPostEquipmentAdvice_200(t *testing.T) {
	svc := &mockAdviceServicer{
		equipmentAdvice: func(context.Context, uuid.UUID) (domain.Advice, error) {
			return domain.Advice{Answer: "Oil the hinges."}, nil
		},
	}

	rec := serve(t, handler.Services{Advice: svc}, http.MethodPost, "/advice/equipment/"+uuid.New().String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostQuestion(t *testing.T) {
	svc := &mockAdviceServicer{
		question: func(_ context.Context, q string) (domain.Advice, error) {
			return domain.Advice{TaskID: advice.GeneralTaskID, Answer: "At 8 weeks: " + q}, nil
		},
	}

	rec := serve(t, handler.Services{Advice: svc}, http.MethodPost, "/advice/questions",
		jsonBody(t, map[string]string{"question": "weaning?"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp domain.Advice
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, advice.GeneralTaskID, resp.TaskID)
}

func TestGetAdviceTasks(t *testing.T) {
	svc := &mockAdviceServicer{tasks: func() []string { return []string{"milk-1", "profile-2"} }}

	rec := serve(t, handler.Services{Advice: svc}, http.MethodGet, "/advice/tasks", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"loading":["milk-1","profile-2"]}`, rec.Body.String())
}
