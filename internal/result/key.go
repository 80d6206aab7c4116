package result

import "time"

// Key distinguishes otherwise same-question results from different runs.
// Two results may legitimately share a question id (different job, different
// timestamp, different replicate); keying storage by question id alone would
// silently drop all but the last of them.
type Key struct {
	QuestionID string
	JobID      string
	Timestamp  string
}

// String renders the composite storage key.
func (k Key) String() string {
	return k.QuestionID + "_" + k.JobID + "_" + k.Timestamp
}

// KeyAt builds the composite key for a result. A missing timestamp defaults
// to the supplied clock reading so keyless records still get distinct keys
// per merge.
func KeyAt(r VerificationResult, now time.Time) Key {
	key := Key{
		QuestionID: r.QuestionID(),
		JobID:      r.JobID(),
		Timestamp:  r.Timestamp(),
	}
	if key.Timestamp == "" {
		key.Timestamp = now.UTC().Format(time.RFC3339)
	}
	return key
}
