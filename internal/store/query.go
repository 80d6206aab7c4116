package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"veriq/internal/result"
)

// Summary is the per-row metadata shown by listings.
type Summary struct {
	Key            string
	QuestionID     string
	JobID          string
	Timestamp      string
	AnsweringModel string
	RunName        string
	Completed      *bool
}

// LoadResults returns every stored result in ingestion order.
func LoadResults(ctx context.Context, db *sql.DB) ([]result.VerificationResult, error) {
	if ctx == nil {
		return nil, errors.New("store: context is nil")
	}
	if db == nil {
		return nil, errors.New("store: db is nil")
	}
	rows, err := db.QueryContext(ctx, `SELECT result_key, CAST(payload AS VARCHAR) FROM results ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []result.VerificationResult
	for rows.Next() {
		var key, payload string
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		var r result.VerificationResult
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decode result %s: %w", key, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

// ListSummaries returns listing metadata for every stored result in
// ingestion order.
func ListSummaries(ctx context.Context, db *sql.DB) ([]Summary, error) {
	if ctx == nil {
		return nil, errors.New("store: context is nil")
	}
	if db == nil {
		return nil, errors.New("store: db is nil")
	}
	rows, err := db.QueryContext(ctx, `
		SELECT result_key, question_id, COALESCE(job_id, ''), ts,
		       COALESCE(answering_model, ''), COALESCE(run_name, ''), completed
		FROM results ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var completed sql.NullBool
		if err := rows.Scan(&s.Key, &s.QuestionID, &s.JobID, &s.Timestamp, &s.AnsweringModel, &s.RunName, &completed); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		if completed.Valid {
			v := completed.Bool
			s.Completed = &v
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return out, nil
}

// Count returns the number of stored results.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	if db == nil {
		return 0, errors.New("store: db is nil")
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}
