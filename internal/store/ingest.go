package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"veriq/internal/result"
)

// Stats reports the outcome of one ingestion batch.
type Stats struct {
	Inserted   int
	Duplicates int
}

// Ingest inserts verification results keyed by question id, job id, and
// timestamp. A key already present in the store is skipped, never overwritten,
// so re-importing a batch is idempotent. Results without a timestamp are keyed
// at now.
func Ingest(ctx context.Context, db *sql.DB, results []result.VerificationResult, now time.Time) (Stats, error) {
	if ctx == nil {
		return Stats{}, errors.New("store: context is nil")
	}
	if db == nil {
		return Stats{}, errors.New("store: db is nil")
	}
	var stats Stats
	for i, r := range results {
		key := result.KeyAt(r, now)

		raw, err := json.Marshal(r)
		if err != nil {
			return stats, fmt.Errorf("encode result %s: %w", key, err)
		}
		payload, err := CanonicalJSON(json.RawMessage(raw))
		if err != nil {
			return stats, fmt.Errorf("canonicalize result %s: %w", key, err)
		}
		fingerprint := fingerprintBytes(payload)

		var (
			answeringModel, parsingModel, runName string
			completed                             any
		)
		if r.Metadata != nil {
			answeringModel = r.Metadata.AnsweringModel
			parsingModel = r.Metadata.ParsingModel
			runName = r.Metadata.RunName
			if r.Metadata.CompletedWithoutErrors != nil {
				completed = *r.Metadata.CompletedWithoutErrors
			}
		}

		res, err := db.ExecContext(
			ctx,
			`INSERT INTO results (
			   result_key, result_id, question_id, job_id, ts,
			   answering_model, parsing_model, run_name, completed,
			   fingerprint, payload, ingested_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, now())
			 ON CONFLICT (result_key) DO NOTHING`,
			key.String(),
			uuid.NewString(),
			key.QuestionID,
			key.JobID,
			key.Timestamp,
			answeringModel,
			parsingModel,
			runName,
			completed,
			fingerprint,
			string(payload),
		)
		if err != nil {
			return stats, fmt.Errorf("insert result %d (%s): %w", i, key, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return stats, fmt.Errorf("insert result %d (%s): rows affected: %w", i, key, err)
		}
		if affected > 0 {
			stats.Inserted++
		} else {
			stats.Duplicates++
		}
	}
	return stats, nil
}
