// Command generate_results writes a synthetic verification-result batch for
// exercising import, export, and the review UI against realistic volumes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"veriq/internal/result"
)

func main() {
	questions := flag.Int("questions", 50, "number of distinct questions")
	jobs := flag.Int("jobs", 2, "number of jobs per question")
	outPath := flag.String("out", "", "output results JSON path")
	flag.Parse()
	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_results --out <results.json> [--questions N] [--jobs M]")
		os.Exit(2)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	batch := generateBatch(*questions, *jobs)
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode batch: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write batch: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d results to %s\n", len(batch), *outPath)
}

var models = []string{"gpt-4", "claude-3", "gemini-pro"}

func generateBatch(questions, jobs int) []result.VerificationResult {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	batch := make([]result.VerificationResult, 0, questions*jobs)
	for q := 0; q < questions; q++ {
		questionID := deterministicID("question", q)
		for j := 0; j < jobs; j++ {
			completed := true
			// Every seventh result fails, every eleventh lacks a verdict.
			var verify *bool
			if (q+j)%11 != 0 {
				passed := (q+j)%7 != 0
				verify = &passed
			}
			ts := start.Add(time.Duration(q*jobs+j) * time.Minute)
			batch = append(batch, result.VerificationResult{
				Metadata: &result.Metadata{
					QuestionID:             questionID,
					QuestionText:           fmt.Sprintf("Synthetic question %d?", q),
					JobID:                  fmt.Sprintf("job-%d", j),
					Timestamp:              ts.Format(time.RFC3339),
					AnsweringModel:         models[q%len(models)],
					ParsingModel:           "gpt-4-mini",
					RunName:                "fixture",
					CompletedWithoutErrors: &completed,
				},
				Template: &result.Template{
					RawResponse:  fmt.Sprintf("Synthetic answer %d-%d.", q, j),
					VerifyResult: verify,
				},
			})
		}
	}
	return batch
}

// deterministicID keeps fixture ids stable across runs.
func deterministicID(prefix string, index int) string {
	return uuid.NewSHA1(fixtureNamespace, []byte(fmt.Sprintf("%s-%d", prefix, index))).String()
}

var fixtureNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
