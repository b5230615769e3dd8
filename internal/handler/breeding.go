package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/herdbook/herdbook/internal/domain"
)

// breedingRequest is the body of POST /breeding and PUT /breeding/{id}.
// expected_birth_date is derived from mating_date unless an update supplies it.
type breedingRequest struct {
	DoeID             uuid.UUID              `json:"doe_id"`
	BuckID            *uuid.UUID             `json:"buck_id"`
	MatingDate        *openapi_types.Date    `json:"mating_date"`
	ExpectedBirthDate *openapi_types.Date    `json:"expected_birth_date"`
	ActualBirthDate   *openapi_types.Date    `json:"actual_birth_date"`
	PregnancyStatus   domain.PregnancyStatus `json:"pregnancy_status"`
	NumberOfKids      int                    `json:"number_of_kids"`
	KidIDs            []uuid.UUID            `json:"kid_ids"`
	Notes             string                 `json:"notes"`
	Complications     string                 `json:"complications"`
}

// ListBreeding handles GET /breeding.
func (s *Server) ListBreeding(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	items, total, err := s.svc.Breeding.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items, params, total))
}

// CreateBreeding handles POST /breeding.
func (s *Server) CreateBreeding(w http.ResponseWriter, r *http.Request) {
	var body breedingRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.svc.Breeding.Create(r.Context(), requestToBreeding(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err, "breeding record not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetUpcomingEvents handles GET /breeding/upcoming.
func (s *Server) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.svc.Herd.UpcomingEvents(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// GetBreeding handles GET /breeding/{id}.
func (s *Server) GetBreeding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	br, err := s.svc.Breeding.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "breeding record not found")
		return
	}
	writeJSON(w, http.StatusOK, br)
}

// UpdateBreeding handles PUT /breeding/{id}.
func (s *Server) UpdateBreeding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body breedingRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	updated, err := s.svc.Breeding.Update(r.Context(), requestToBreeding(id, body))
	if err != nil {
		s.writeError(w, r, err, "breeding record not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBreeding handles DELETE /breeding/{id}.
func (s *Server) DeleteBreeding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.svc.Breeding.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "breeding record not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestToBreeding(id uuid.UUID, body breedingRequest) domain.BreedingRecord {
	kids := body.KidIDs
	if kids == nil {
		kids = []uuid.UUID{}
	}
	return domain.BreedingRecord{
		ID:                id,
		DoeID:             body.DoeID,
		BuckID:            body.BuckID,
		MatingDate:        dateOrZero(body.MatingDate),
		ExpectedBirthDate: dateOrZero(body.ExpectedBirthDate),
		ActualBirthDate:   optionalDate(body.ActualBirthDate),
		PregnancyStatus:   body.PregnancyStatus,
		NumberOfKids:      body.NumberOfKids,
		KidIDs:            kids,
		Notes:             body.Notes,
		Complications:     body.Complications,
	}
}
