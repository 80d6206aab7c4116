package result

import (
	"encoding/json"
	"fmt"
	"os"
)

// batchEnvelope matches the exported JSON document shape so previously
// exported files can be re-imported.
type batchEnvelope struct {
	FormatVersion string               `json:"format_version"`
	Results       []VerificationResult `json:"results"`
}

// LoadBatch reads verification results from a JSON file. The file may hold a
// bare array, a single result object, or a versioned export envelope. Unknown
// fields are tolerated: the remote evaluator adds fields over time and a
// batch must not be rejected for carrying them.
func LoadBatch(path string) ([]VerificationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read result batch: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch decodes a result batch from raw JSON bytes.
func ParseBatch(data []byte) ([]VerificationResult, error) {
	var batch []VerificationResult
	if err := json.Unmarshal(data, &batch); err == nil {
		return batch, nil
	}
	var envelope batchEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, nil
	}
	var single VerificationResult
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse result batch: %w", err)
	}
	return []VerificationResult{single}, nil
}
