package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"veriq/internal/result"
	"veriq/internal/rubric"
)

// FormatVersion identifies the structured JSON export envelope.
const FormatVersion = "2.0"

// Options carries export-time context recorded in the envelope.
type Options struct {
	GlobalRubric      *rubric.Rubric
	FilterDescription string
	Now               time.Time
}

type envelopeMetadata struct {
	ExportID          string `json:"export_id"`
	ExportTimestamp   string `json:"export_timestamp"`
	TotalResults      int    `json:"total_results"`
	FilterDescription string `json:"filter_description,omitempty"`
}

type sharedData struct {
	GlobalRubric *rubric.Rubric `json:"global_rubric"`
}

type envelope struct {
	FormatVersion string           `json:"format_version"`
	Metadata      envelopeMetadata `json:"metadata"`
	SharedData    sharedData       `json:"shared_data"`
	Results       []map[string]any `json:"results"`
}

// MarshalResults renders the versioned JSON export document: pretty-printed,
// 2-space indented, with 1-based row indexes. A result whose abstention was
// detected and overridden exports completed_without_errors as the literal
// string "abstained"; every other result keeps its original boolean.
func MarshalResults(results []result.VerificationResult, opts Options) ([]byte, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	rows := make([]map[string]any, 0, len(results))
	for i, r := range results {
		row, err := resultRow(r)
		if err != nil {
			return nil, fmt.Errorf("encode result %d: %w", i+1, err)
		}
		row["row_index"] = i + 1
		rows = append(rows, row)
	}
	doc := envelope{
		FormatVersion: FormatVersion,
		Metadata: envelopeMetadata{
			ExportID:          uuid.NewString(),
			ExportTimestamp:   now.UTC().Format(time.RFC3339),
			TotalResults:      len(results),
			FilterDescription: opts.FilterDescription,
		},
		SharedData: sharedData{GlobalRubric: opts.GlobalRubric},
		Results:    rows,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return data, nil
}

// resultRow converts one result to a generic map so export-time field
// overrides never touch the stored record.
func resultRow(r result.VerificationResult) (map[string]any, error) {
	encoded, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var row map[string]any
	if err := json.Unmarshal(encoded, &row); err != nil {
		return nil, err
	}
	if r.Abstained() {
		metadata, ok := row["metadata"].(map[string]any)
		if !ok {
			metadata = map[string]any{}
			row["metadata"] = metadata
		}
		metadata["completed_without_errors"] = "abstained"
	}
	return row, nil
}
