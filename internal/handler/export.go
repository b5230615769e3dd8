// Package handler: export.go implements GET /export, GET /backup and POST /restore.
// The export is the flat milk table. Use ?format=csv for CSV; default is JSON.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/herdbook/herdbook/internal/domain"
	"github.com/herdbook/herdbook/internal/repo"
)

// csvHeaders defines the column names written as the first row of the CSV export.
var csvHeaders = []string{"goat_id", "goat_name", "breed", "date", "quantity", "quality", "notes"}

// GetExport implements GET /export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorDetail{Code: "bad_request", Message: "invalid format"}})
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("format must be csv or json"))
		return
	}

	rows, err := s.svc.Export.MilkRows(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	if format != nil && *format == "csv" {
		buf := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="milk-production.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetBackup implements GET /backup. The body is accepted by POST /restore.
func (s *Server) GetBackup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="herdbook-backup.json"`)
	writeJSON(w, http.StatusOK, s.svc.Export.Backup(r.Context()))
}

// PostRestore implements POST /restore. Every collection is replaced.
func (s *Server) PostRestore(w http.ResponseWriter, r *http.Request) {
	var body repo.Snapshot
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := s.svc.Export.Restore(r.Context(), body); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// buildCSV encodes rows as CSV, header first.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail.
	_ = w.Write(csvHeaders)
	for _, r := range rows {
		_ = w.Write(rowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.GoatID.String(),
		r.GoatName,
		r.Breed,
		r.Date.UTC().Format(time.DateOnly),
		strconv.FormatFloat(r.Quantity, 'f', -1, 64),
		string(r.Quality),
		r.Notes,
	}
}
