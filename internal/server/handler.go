package server

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"time"

	"veriq/internal/export"
	"veriq/internal/filter"
	"veriq/internal/report"
	"veriq/internal/result"
	"veriq/internal/store"
)

// NewHandler builds the HTTP handler for the report page, the results API,
// and the export endpoints. Every endpoint accepts the same filter query
// parameters.
func NewHandler(db *sql.DB) http.Handler {
	h := &handler{db: db, now: time.Now}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.serveReport)
	mux.HandleFunc("GET /api/results", h.serveResults)
	mux.HandleFunc("GET /export/csv", h.serveExport(export.FormatCSV))
	mux.HandleFunc("GET /export/json", h.serveExport(export.FormatJSON))
	return mux
}

type handler struct {
	db  *sql.DB
	now func() time.Time
}

// filtered loads the stored results and applies the request's filters. A
// false return means the response has already been written.
func (h *handler) filtered(w http.ResponseWriter, r *http.Request) ([]result.VerificationResult, bool) {
	predicates, err := predicatesFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	results, err := store.LoadResults(r.Context(), h.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	matched, err := filter.Apply(results, predicates)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return matched, true
}

func (h *handler) serveReport(w http.ResponseWriter, r *http.Request) {
	matched, ok := h.filtered(w, r)
	if !ok {
		return
	}
	html, err := report.RenderHTML(r.Context(), matched)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func (h *handler) serveResults(w http.ResponseWriter, r *http.Request) {
	matched, ok := h.filtered(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Total   int                          `json:"total"`
		Results []result.VerificationResult `json:"results"`
	}{Total: len(matched), Results: matched})
}

func (h *handler) serveExport(format export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matched, ok := h.filtered(w, r)
		if !ok {
			return
		}
		opts := export.Options{
			FilterDescription: describeFilters(r.URL.Query()),
			Now:               h.now(),
		}
		file, err := export.ExportFilteredResults(matched, format, opts, func(string) {})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if file == nil {
			writeError(w, http.StatusNotFound, export.NoResultsMessage)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		switch format {
		case export.FormatCSV:
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		default:
			w.Header().Set("Content-Type", "application/json")
		}
		_, _ = io.Copy(w, bytes.NewReader(file.Data))
	}
}
