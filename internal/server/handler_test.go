package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"veriq/internal/result"
	"veriq/internal/store"
	storetesting "veriq/internal/store/testing"
	"veriq/internal/testutil"
)

func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	db := storetesting.Open(t, "")
	storetesting.ApplySchema(t, db)

	passed, failed := true, false
	completed := true
	batch := []result.VerificationResult{
		{
			Metadata: &result.Metadata{QuestionID: "q1", JobID: "job-1", Timestamp: "2026-03-01T10:00:00Z", AnsweringModel: "gpt-4", CompletedWithoutErrors: &completed},
			Template: &result.Template{VerifyResult: &passed},
		},
		{
			Metadata: &result.Metadata{QuestionID: "q2", JobID: "job-1", Timestamp: "2026-03-01T11:00:00Z", AnsweringModel: "claude-3", CompletedWithoutErrors: &completed},
			Template: &result.Template{VerifyResult: &failed},
		},
	}
	ctx := testutil.Context(t, 0)
	if _, err := store.Ingest(ctx, db, batch, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return db
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// TestServeReport fetches the root page and expects the rendered HTML
// summary.
func TestServeReport(t *testing.T) {
	handler := NewHandler(seededDB(t))
	rec := get(t, handler, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "2 results, 1 passed, 1 failed") {
		t.Fatalf("summary missing from page:\n%s", rec.Body.String())
	}
}

// TestServeResultsFiltersByOutcome applies an outcome filter through the
// query string and expects only matching results back.
func TestServeResultsFiltersByOutcome(t *testing.T) {
	handler := NewHandler(seededDB(t))
	rec := get(t, handler, "/api/results?outcome=failed")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Total   int                          `json:"total"`
		Results []result.VerificationResult `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != 1 || len(payload.Results) != 1 {
		t.Fatalf("payload = %+v, want one failed result", payload)
	}
	if payload.Results[0].QuestionID() != "q2" {
		t.Fatalf("question = %q, want q2", payload.Results[0].QuestionID())
	}
}

// TestServeResultsRejectsBadParams returns 400 for unparsable filter values.
func TestServeResultsRejectsBadParams(t *testing.T) {
	handler := NewHandler(seededDB(t))
	for _, path := range []string{
		"/api/results?completed=maybe",
		"/api/results?outcome=sideways",
		"/api/results?start=yesterday",
		"/api/results?pattern=%5B", // unclosed character class
	} {
		rec := get(t, handler, path)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

// TestServeExportCSV downloads the CSV export and checks the attachment
// headers and the header row.
func TestServeExportCSV(t *testing.T) {
	handler := NewHandler(seededDB(t))
	rec := get(t, handler, "/export/csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "filtered_results_") || !strings.Contains(cd, ".csv") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "row_index,question_id") {
		t.Fatalf("csv header missing:\n%s", rec.Body.String())
	}
}

// TestServeExportJSONEnvelope downloads the JSON export and checks the
// envelope version.
func TestServeExportJSONEnvelope(t *testing.T) {
	handler := NewHandler(seededDB(t))
	rec := get(t, handler, "/export/json?outcome=passed")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		FormatVersion string `json:"format_version"`
		Metadata      struct {
			TotalResults      int    `json:"total_results"`
			FilterDescription string `json:"filter_description"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if envelope.FormatVersion != "2.0" {
		t.Fatalf("format_version = %q", envelope.FormatVersion)
	}
	if envelope.Metadata.TotalResults != 1 {
		t.Fatalf("total_results = %d, want 1", envelope.Metadata.TotalResults)
	}
	if envelope.Metadata.FilterDescription != "outcome=passed" {
		t.Fatalf("filter_description = %q", envelope.Metadata.FilterDescription)
	}
}

// TestServeExportEmptySet requests an export whose filters match nothing and
// expects a 404 with the no-results message instead of an empty file.
func TestServeExportEmptySet(t *testing.T) {
	handler := NewHandler(seededDB(t))
	rec := get(t, handler, "/export/csv?answering_model=nonexistent")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No results match") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
