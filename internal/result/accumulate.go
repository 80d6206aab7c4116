package result

import "time"

// Merge unions incoming results into existing, keyed by the composite
// (question id, job id, timestamp) key. Existing order is preserved and new
// entries append in batch order. Re-ingesting an identical key replaces the
// entry in place, so merge is idempotent. Neither argument is mutated.
func Merge(existing, incoming []VerificationResult) []VerificationResult {
	return MergeAt(existing, incoming, time.Now().UTC())
}

// MergeAt is Merge with an explicit clock for records lacking a timestamp.
func MergeAt(existing, incoming []VerificationResult, now time.Time) []VerificationResult {
	merged := make([]VerificationResult, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[KeyAt(r, now).String()] = i
	}
	for _, r := range incoming {
		key := KeyAt(r, now).String()
		if at, ok := index[key]; ok {
			merged[at] = r
			continue
		}
		index[key] = len(merged)
		merged = append(merged, r)
	}
	return merged
}
