package handler

import "net/http"

// GetAlerts handles GET /herd/alerts.
func (s *Server) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.svc.Herd.Alerts(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// GetMedicalLog handles GET /herd/medical, newest first across all goats.
func (s *Server) GetMedicalLog(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	entries, total, err := s.svc.Herd.MedicalLog(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(entries, params, total))
}

// GetMilkLog handles GET /herd/milk.
func (s *Server) GetMilkLog(w http.ResponseWriter, r *http.Request) {
	params, ok := pageParams(w, r)
	if !ok {
		return
	}
	entries, total, err := s.svc.Herd.MilkLog(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(entries, params, total))
}

// GetConsumptionSummary handles GET /herd/consumption.
func (s *Server) GetConsumptionSummary(w http.ResponseWriter, r *http.Request) {
	sums, err := s.svc.Herd.Consumption(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, sums)
}
