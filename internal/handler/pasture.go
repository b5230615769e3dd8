package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/herdbook/herdbook/internal/domain"
)

type pastureRequest struct {
	Name             string                  `json:"name"`
	Size             float64                 `json:"size"`
	GrassType        domain.GrassType        `json:"grass_type"`
	Condition        domain.PastureCondition `json:"condition"`
	LastGrazedDate   *openapi_types.Date     `json:"last_grazed_date"`
	RestPeriod       int                     `json:"rest_period"`
	Capacity         int                     `json:"capacity"`
	CurrentOccupancy int                     `json:"current_occupancy"`
	Notes            string                  `json:"notes"`
}

type grazingRequest struct {
	StartDate       *openapi_types.Date      `json:"start_date"`
	EndDate         *openapi_types.Date      `json:"end_date"`
	NumberOfGoats   int                      `json:"number_of_goats"`
	GoatIDs         []uuid.UUID              `json:"goat_ids"`
	ConditionBefore domain.PastureCondition  `json:"condition_before"`
	ConditionAfter  *domain.PastureCondition `json:"condition_after"`
	Notes           string                   `json:"notes"`
}

// ListPastures handles GET /pastures.
func (s *Server) ListPastures(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	items, total, err := s.svc.Pastures.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items, params, total))
}

// CreatePasture handles POST /pastures. A zero rest period gets the default.
func (s *Server) CreatePasture(w http.ResponseWriter, r *http.Request) {
	var body pastureRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.svc.Pastures.Create(r.Context(), requestToPasture(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err, "pasture not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetPasture handles GET /pastures/{id}.
func (s *Server) GetPasture(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	p, err := s.svc.Pastures.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "pasture not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdatePasture handles PUT /pastures/{id}.
func (s *Server) UpdatePasture(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body pastureRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	updated, err := s.svc.Pastures.Update(r.Context(), requestToPasture(id, body))
	if err != nil {
		s.writeError(w, r, err, "pasture not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeletePasture handles DELETE /pastures/{id}.
func (s *Server) DeletePasture(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.svc.Pastures.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "pasture not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddGrazing handles POST /pastures/{id}/grazing.
func (s *Server) AddGrazing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body grazingRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	goats := body.GoatIDs
	if goats == nil {
		goats = []uuid.UUID{}
	}
	p, err := s.svc.Pastures.AddGrazing(r.Context(), id, domain.GrazingRecord{
		StartDate:       dateOrZero(body.StartDate),
		EndDate:         optionalDate(body.EndDate),
		NumberOfGoats:   body.NumberOfGoats,
		GoatIDs:         goats,
		ConditionBefore: body.ConditionBefore,
		ConditionAfter:  body.ConditionAfter,
		Notes:           body.Notes,
	})
	if err != nil {
		s.writeError(w, r, err, "pasture not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func requestToPasture(id uuid.UUID, body pastureRequest) domain.Pasture {
	return domain.Pasture{
		ID:               id,
		Name:             body.Name,
		Size:             body.Size,
		GrassType:        body.GrassType,
		Condition:        body.Condition,
		LastGrazedDate:   optionalDate(body.LastGrazedDate),
		RestPeriod:       body.RestPeriod,
		Capacity:         body.Capacity,
		CurrentOccupancy: body.CurrentOccupancy,
		Notes:            body.Notes,
	}
}
