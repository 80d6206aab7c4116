package result

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func resultFixture(questionID, jobID, timestamp, runName string) VerificationResult {
	return VerificationResult{
		Metadata: &Metadata{
			QuestionID: questionID,
			JobID:      jobID,
			Timestamp:  timestamp,
			RunName:    runName,
		},
	}
}

// TestMergeKeepsDistinctRunsForSameQuestion verifies the no-overwrite law:
// two runs that share a question id but differ in job id or timestamp both
// survive accumulation.
func TestMergeKeepsDistinctRunsForSameQuestion(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	batchA := []VerificationResult{resultFixture("q1", "job-1", "2025-06-01T10:00:00Z", "foo")}
	batchB := []VerificationResult{resultFixture("q1", "job-2", "2025-06-01T11:00:00Z", "bar")}

	merged := MergeAt(MergeAt(nil, batchA, now), batchB, now)
	if len(merged) != 2 {
		t.Fatalf("expected both runs retained, got %d results", len(merged))
	}
	if merged[0].Metadata.RunName != "foo" || merged[1].Metadata.RunName != "bar" {
		t.Fatalf("unexpected merge order: %+v", merged)
	}
}

// TestMergeIsIdempotent verifies merging a set with itself changes nothing.
func TestMergeIsIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	set := []VerificationResult{
		resultFixture("q1", "job-1", "2025-06-01T10:00:00Z", "foo"),
		resultFixture("q2", "job-1", "2025-06-01T10:05:00Z", "foo"),
	}
	merged := MergeAt(set, set, now)
	if diff := cmp.Diff(set, merged); diff != "" {
		t.Fatalf("re-ingestion changed the set (-want +got):\n%s", diff)
	}
}

// TestMergeReplacesIdenticalKey verifies last-write-wins for an exact key match.
func TestMergeReplacesIdenticalKey(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	original := resultFixture("q1", "job-1", "2025-06-01T10:00:00Z", "foo")
	updated := resultFixture("q1", "job-1", "2025-06-01T10:00:00Z", "foo")
	updated.Metadata.Error = "transient parse failure"

	merged := MergeAt([]VerificationResult{original}, []VerificationResult{updated}, now)
	if len(merged) != 1 {
		t.Fatalf("identical key should replace, got %d results", len(merged))
	}
	if merged[0].Metadata.Error != "transient parse failure" {
		t.Fatalf("expected incoming entry to win, got %+v", merged[0].Metadata)
	}
}

// TestMergeDoesNotMutateInputs verifies merge purity.
func TestMergeDoesNotMutateInputs(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	existing := []VerificationResult{resultFixture("q1", "job-1", "2025-06-01T10:00:00Z", "foo")}
	incoming := []VerificationResult{resultFixture("q1", "job-1", "2025-06-01T10:00:00Z", "bar")}
	existingCopy := resultFixture("q1", "job-1", "2025-06-01T10:00:00Z", "foo")

	_ = MergeAt(existing, incoming, now)
	if diff := cmp.Diff(existingCopy, existing[0]); diff != "" {
		t.Fatalf("existing slice mutated (-want +got):\n%s", diff)
	}
}

// TestMergeDefaultsMissingTimestamp verifies keyless records get the
// merge-time clock in their composite key.
func TestMergeDefaultsMissingTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := resultFixture("q1", "job-1", "", "foo")

	key := KeyAt(record, now)
	if key.Timestamp != "2025-06-01T12:00:00Z" {
		t.Fatalf("expected merge-time timestamp, got %q", key.Timestamp)
	}
	if key.String() != "q1_job-1_2025-06-01T12:00:00Z" {
		t.Fatalf("unexpected composite key %q", key.String())
	}

	// A later merge of the same keyless record at a different clock reading
	// yields a distinct key, so it accumulates instead of overwriting.
	merged := MergeAt(MergeAt(nil, []VerificationResult{record}, now), []VerificationResult{record}, now.Add(time.Minute))
	if len(merged) != 2 {
		t.Fatalf("expected 2 entries for keyless re-merge, got %d", len(merged))
	}
}
