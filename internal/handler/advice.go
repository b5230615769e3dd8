package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/herdbook/herdbook/internal/advice"
)

type healthAdviceRequest struct {
	Symptoms string `json:"symptoms"`
}

type questionRequest struct {
	Question string `json:"question"`
}

// PostGoatAdvice handles POST /advice/goats/{id}/{kind} for the profile,
// feeding, breeding and milk templates. Provider failures are returned as
// the answer text, so this route only fails for unknown goats or kinds.
func (s *Server) PostGoatAdvice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	kind := advice.Kind(chi.URLParam(r, "kind"))
	a, err := s.svc.Advice.GoatAdvice(r.Context(), id, kind)
	if err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// PostHealthAdvice handles POST /advice/goats/{id}/health.
func (s *Server) PostHealthAdvice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body healthAdviceRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	a, err := s.svc.Advice.HealthAdvice(r.Context(), id, body.Symptoms)
	if err != nil {
		s.writeError(w, r, err, "goat not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// PostPastureAdvice handles POST /advice/pastures/{id}.
func (s *Server) PostPastureAdvice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	a, err := s.svc.Advice.PastureAdvice(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "pasture not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// PostEquipmentAdvice handles POST /advice/equipment/{id}.
func (s *Server) PostEquipmentAdvice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	a, err := s.svc.Advice.EquipmentAdvice(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// PostQuestion handles POST /advice/questions.
func (s *Server) PostQuestion(w http.ResponseWriter, r *http.Request) {
	var body questionRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	a, err := s.svc.Advice.Question(r.Context(), body.Question)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GetAdviceTasks handles GET /advice/tasks and lists the task ids whose
// answers are still pending.
func (s *Server) GetAdviceTasks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"loading": s.svc.Advice.Tasks()})
}
