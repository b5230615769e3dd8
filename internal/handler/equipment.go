package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/herdbook/herdbook/internal/domain"
)

type equipmentRequest struct {
	Name                string                    `json:"name"`
	Type                domain.EquipmentType      `json:"type"`
	Condition           domain.EquipmentCondition `json:"condition"`
	PurchaseDate        *openapi_types.Date       `json:"purchase_date"`
	LastMaintenanceDate *openapi_types.Date       `json:"last_maintenance_date"`
	NextMaintenanceDate *openapi_types.Date       `json:"next_maintenance_date"`
	Cost                float64                   `json:"cost"`
	Location            string                    `json:"location"`
	Notes               string                    `json:"notes"`
}

type maintenanceRequest struct {
	Date                *openapi_types.Date    `json:"date"`
	Type                domain.MaintenanceType `json:"type"`
	Description         string                 `json:"description"`
	Cost                float64                `json:"cost"`
	PerformedBy         string                 `json:"performed_by"`
	NextMaintenanceDate *openapi_types.Date    `json:"next_maintenance_date"`
}

// ListEquipment handles GET /equipment.
func (s *Server) ListEquipment(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	items, total, err := s.svc.Equipment.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items, params, total))
}

// CreateEquipment handles POST /equipment.
func (s *Server) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var body equipmentRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	created, err := s.svc.Equipment.Create(r.Context(), requestToEquipment(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetEquipment handles GET /equipment/{id}.
func (s *Server) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	e, err := s.svc.Equipment.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// UpdateEquipment handles PUT /equipment/{id}.
func (s *Server) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body equipmentRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	updated, err := s.svc.Equipment.Update(r.Context(), requestToEquipment(id, body))
	if err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteEquipment handles DELETE /equipment/{id}.
func (s *Server) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.svc.Equipment.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMaintenance handles POST /equipment/{id}/maintenance and returns the
// updated equipment.
func (s *Server) AddMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body maintenanceRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	e, err := s.svc.Equipment.AddMaintenance(r.Context(), id, domain.MaintenanceRecord{
		Date:                dateOrZero(body.Date),
		Type:                body.Type,
		Description:         body.Description,
		Cost:                body.Cost,
		PerformedBy:         body.PerformedBy,
		NextMaintenanceDate: optionalDate(body.NextMaintenanceDate),
	})
	if err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func requestToEquipment(id uuid.UUID, body equipmentRequest) domain.Equipment {
	return domain.Equipment{
		ID:                  id,
		Name:                body.Name,
		Type:                body.Type,
		Condition:           body.Condition,
		PurchaseDate:        dateOrZero(body.PurchaseDate),
		LastMaintenanceDate: optionalDate(body.LastMaintenanceDate),
		NextMaintenanceDate: optionalDate(body.NextMaintenanceDate),
		Cost:                body.Cost,
		Location:            body.Location,
		Notes:               body.Notes,
	}
}
