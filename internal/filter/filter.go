package filter

import (
	"fmt"
	"regexp"
	"time"

	"veriq/internal/result"
)

// Outcome selects results by verification outcome. Not-applicable means the
// verify field is absent, which is distinct from a recorded failure.
type Outcome string

const (
	OutcomeAny           Outcome = ""
	OutcomePassed        Outcome = "passed"
	OutcomeFailed        Outcome = "failed"
	OutcomeNotApplicable Outcome = "not_applicable"
)

// OutcomeOf derives the verification outcome recorded on a result.
func OutcomeOf(r result.VerificationResult) Outcome {
	if r.Template == nil || r.Template.VerifyResult == nil {
		return OutcomeNotApplicable
	}
	if *r.Template.VerifyResult {
		return OutcomePassed
	}
	return OutcomeFailed
}

// ModelMatch selects how the answering-model and parsing-model sets combine.
type ModelMatch string

const (
	MatchUnion        ModelMatch = "union"
	MatchIntersection ModelMatch = "intersection"
)

// Predicates is a set of independently-optional constraints, AND-combined
// across families. An empty family is always satisfied.
type Predicates struct {
	Completed        *bool
	Outcome          Outcome
	HasGranular      *bool
	AnsweringModels  []string
	ParsingModels    []string
	ModelMatch       ModelMatch
	Start            *time.Time
	End              *time.Time
	QuestionContains string
	QuestionPattern  string
}

// Apply returns the subset of results matching every predicate family,
// preserving input order without mutating the input. An uncompilable
// question pattern is a validation error; no filter is applied in that case.
func Apply(results []result.VerificationResult, p Predicates) ([]result.VerificationResult, error) {
	var pattern *regexp.Regexp
	if p.QuestionPattern != "" {
		compiled, err := regexp.Compile(p.QuestionPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid question pattern: %w", err)
		}
		pattern = compiled
	}
	out := make([]result.VerificationResult, 0, len(results))
	for _, r := range results {
		if matches(r, p, pattern) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matches(r result.VerificationResult, p Predicates, pattern *regexp.Regexp) bool {
	return matchesValidity(r, p.Completed) &&
		matchesOutcome(r, p.Outcome) &&
		matchesGranular(r, p.HasGranular) &&
		matchesModels(r, p) &&
		matchesWindow(r, p.Start, p.End) &&
		matchesSearch(r, p.QuestionContains) &&
		matchesPattern(r, pattern)
}
