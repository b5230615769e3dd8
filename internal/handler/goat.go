package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/herdbook/herdbook/internal/domain"
)

// goatRequest is the body of POST /goats and PUT /goats/{id}.
// Medical and milk histories are managed through their own routes.
type goatRequest struct {
	Name             string              `json:"name"`
	Breed            string              `json:"breed"`
	Age              int                 `json:"age"`
	Sex              domain.GoatSex      `json:"sex"`
	HealthStatus     domain.HealthStatus `json:"health_status"`
	Lineage          string              `json:"lineage"`
	TemperamentNotes string              `json:"temperament_notes"`
	Photo            string              `json:"photo"`
}

type medicalRecordRequest struct {
	Date         *openapi_types.Date `json:"date"`
	Type         domain.MedicalType  `json:"type"`
	Description  string              `json:"description"`
	Treatment    string              `json:"treatment"`
	Veterinarian string              `json:"veterinarian"`
}

type milkRecordRequest struct {
	Date     *openapi_types.Date `json:"date"`
	Quantity float64             `json:"quantity"`
	Quality  domain.MilkQuality  `json:"quality"`
	Notes    string              `json:"notes"`
}

// ListGoats handles GET /goats.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListGoats(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	goats, total, err := s.svc.Goats.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(goats, params, total))
}

// CreateGoat handles POST /goats.
func (s *Server) CreateGoat(w http.ResponseWriter, r *http.Request) {
	var body goatRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.svc.Goats.Create(r.Context(), requestToGoat(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetGoat handles GET /goats/{id}.
func (s *Server) GetGoat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	g, err := s.svc.Goats.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// UpdateGoat handles PUT /goats/{id}.
func (s *Server) UpdateGoat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body goatRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	updated, err := s.svc.Goats.Update(r.Context(), requestToGoat(id, body))
	if err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteGoat handles DELETE /goats/{id}.
func (s *Server) DeleteGoat(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.svc.Goats.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMedicalRecord handles POST /goats/{id}/medical and returns the updated goat.
func (s *Server) AddMedicalRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body medicalRecordRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	g, err := s.svc.Goats.AddMedicalRecord(r.Context(), id, domain.MedicalRecord{
		Date:         dateOrZero(body.Date),
		Type:         body.Type,
		Description:  body.Description,
		Treatment:    body.Treatment,
		Veterinarian: body.Veterinarian,
	})
	if err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// DeleteMedicalRecord handles DELETE /goats/{id}/medical/{recordID}.
func (s *Server) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	s.deleteGoatRecord(w, r, s.svc.Goats.DeleteMedicalRecord, "medical record not found")
}

// AddMilkRecord handles POST /goats/{id}/milk. A missing date means today.
func (s *Server) AddMilkRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body milkRecordRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	g, err := s.svc.Goats.AddMilkRecord(r.Context(), id, domain.MilkRecord{
		Date:     dateOrZero(body.Date),
		Quantity: body.Quantity,
		Quality:  body.Quality,
		Notes:    body.Notes,
	})
	if err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// DeleteMilkRecord handles DELETE /goats/{id}/milk/{recordID}.
func (s *Server) DeleteMilkRecord(w http.ResponseWriter, r *http.Request) {
	s.deleteGoatRecord(w, r, s.svc.Goats.DeleteMilkRecord, "milk record not found")
}

// GetMilkSummary handles GET /goats/{id}/milk/summary.
func (s *Server) GetMilkSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sum, err := s.svc.Goats.MilkSummary(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

type deleteRecordFunc func(ctx context.Context, goatID, recordID uuid.UUID) (domain.Goat, error)

func (s *Server) deleteGoatRecord(w http.ResponseWriter, r *http.Request, del deleteRecordFunc, notFound string) {
	goatID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	recordID, ok := pathUUID(w, r, "recordID")
	if !ok {
		return
	}
	g, err := del(r.Context(), goatID, recordID)
	if err != nil {
		s.writeError(w, r, err, notFound)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// --- mapping helpers --------------------------------------------------------

// requestToGoat builds a domain.Goat from the request body. id is uuid.Nil
// on create.
func requestToGoat(id uuid.UUID, body goatRequest) domain.Goat {
	return domain.Goat{
		ID:               id,
		Name:             body.Name,
		Breed:            body.Breed,
		Age:              body.Age,
		Sex:              body.Sex,
		HealthStatus:     body.HealthStatus,
		Lineage:          body.Lineage,
		TemperamentNotes: body.TemperamentNotes,
		Photo:            body.Photo,
	}
}
