package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/herdbook/herdbook/internal/domain"
)

type feedingRequest struct {
	GoatID         *uuid.UUID      `json:"goat_id"`
	FeedType       domain.FeedType `json:"feed_type"`
	Quantity       float64         `json:"quantity"`
	FeedingTime    time.Time       `json:"feeding_time"`
	Supplements    []string        `json:"supplements"`
	Notes          string          `json:"notes"`
	IsGroupFeeding bool            `json:"is_group_feeding"`
}

// consumptionRequest carries no rate; the service computes it.
type consumptionRequest struct {
	GoatID          uuid.UUID           `json:"goat_id"`
	Date            *openapi_types.Date `json:"date"`
	FeedType        domain.FeedType     `json:"feed_type"`
	PlannedQuantity float64             `json:"planned_quantity"`
	ActualQuantity  float64             `json:"actual_quantity"`
	Notes           string              `json:"notes"`
}

// ListFeeding handles GET /feeding.
func (s *Server) ListFeeding(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	items, total, err := s.svc.Feeding.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items, params, total))
}

// CreateFeeding handles POST /feeding.
func (s *Server) CreateFeeding(w http.ResponseWriter, r *http.Request) {
	var body feedingRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.svc.Feeding.Create(r.Context(), requestToFeeding(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err, "feeding schedule not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetFeeding handles GET /feeding/{id}.
func (s *Server) GetFeeding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	fs, err := s.svc.Feeding.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "feeding schedule not found")
		return
	}
	writeJSON(w, http.StatusOK, fs)
}

// UpdateFeeding handles PUT /feeding/{id}.
func (s *Server) UpdateFeeding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body feedingRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	updated, err := s.svc.Feeding.Update(r.Context(), requestToFeeding(id, body))
	if err != nil {
		s.writeError(w, r, err, "feeding schedule not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteFeeding handles DELETE /feeding/{id}.
func (s *Server) DeleteFeeding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.svc.Feeding.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "feeding schedule not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListConsumption handles GET /consumption, newest first.
func (s *Server) ListConsumption(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	items, total, err := s.svc.Feeding.ListConsumption(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items, params, total))
}

// LogConsumption handles POST /consumption. A missing date means today.
func (s *Server) LogConsumption(w http.ResponseWriter, r *http.Request) {
	var body consumptionRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	date := dateOrZero(body.Date)
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}
	created, err := s.svc.Feeding.LogConsumption(r.Context(), domain.FeedConsumption{
		GoatID:          body.GoatID,
		Date:            date,
		FeedType:        body.FeedType,
		PlannedQuantity: body.PlannedQuantity,
		ActualQuantity:  body.ActualQuantity,
		Notes:           body.Notes,
	})
	if err != nil {
		s.writeError(w, r, err, "consumption record not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetConsumption handles GET /consumption/{id}.
func (s *Server) GetConsumption(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	fc, err := s.svc.Feeding.GetConsumption(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "consumption record not found")
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// DeleteConsumption handles DELETE /consumption/{id}.
func (s *Server) DeleteConsumption(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.svc.Feeding.DeleteConsumption(r.Context(), id); err != nil {
		s.writeError(w, r, err, "consumption record not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestToFeeding(id uuid.UUID, body feedingRequest) domain.FeedingSchedule {
	supplements := body.Supplements
	if supplements == nil {
		supplements = []string{}
	}
	return domain.FeedingSchedule{
		ID:             id,
		GoatID:         body.GoatID,
		FeedType:       body.FeedType,
		Quantity:       body.Quantity,
		FeedingTime:    body.FeedingTime,
		Supplements:    supplements,
		Notes:          body.Notes,
		IsGroupFeeding: body.IsGroupFeeding,
	}
}
