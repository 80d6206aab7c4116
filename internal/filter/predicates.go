package filter

import (
	"regexp"
	"strings"
	"time"

	"veriq/internal/result"
)

func matchesValidity(r result.VerificationResult, completed *bool) bool {
	if completed == nil {
		return true
	}
	return r.CompletedWithoutErrors() == *completed
}

func matchesOutcome(r result.VerificationResult, outcome Outcome) bool {
	if outcome == OutcomeAny {
		return true
	}
	return OutcomeOf(r) == outcome
}

func matchesGranular(r result.VerificationResult, hasGranular *bool) bool {
	if hasGranular == nil {
		return true
	}
	present := r.Template != nil && len(r.Template.VerifyGranularResult) > 0
	return present == *hasGranular
}

func matchesModels(r result.VerificationResult, p Predicates) bool {
	if len(p.AnsweringModels) == 0 && len(p.ParsingModels) == 0 {
		return true
	}
	var answering, parsing string
	if r.Metadata != nil {
		answering = r.Metadata.AnsweringModel
		parsing = r.Metadata.ParsingModel
	}
	answeringHit := contains(p.AnsweringModels, answering)
	parsingHit := contains(p.ParsingModels, parsing)

	if p.ModelMatch == MatchIntersection {
		// Every constrained set must match.
		if len(p.AnsweringModels) > 0 && !answeringHit {
			return false
		}
		if len(p.ParsingModels) > 0 && !parsingHit {
			return false
		}
		return true
	}
	// Union (the default): any constrained set that matches is enough.
	if len(p.AnsweringModels) > 0 && answeringHit {
		return true
	}
	if len(p.ParsingModels) > 0 && parsingHit {
		return true
	}
	return false
}

func matchesWindow(r result.VerificationResult, start, end *time.Time) bool {
	if start == nil && end == nil {
		return true
	}
	at, ok := r.ParsedTimestamp()
	if !ok {
		return false
	}
	if start != nil && at.Before(*start) {
		return false
	}
	if end != nil && at.After(*end) {
		return false
	}
	return true
}

func matchesSearch(r result.VerificationResult, needle string) bool {
	if needle == "" {
		return true
	}
	var text string
	if r.Metadata != nil {
		text = r.Metadata.QuestionText
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
}

func matchesPattern(r result.VerificationResult, pattern *regexp.Regexp) bool {
	if pattern == nil {
		return true
	}
	var text string
	if r.Metadata != nil {
		text = r.Metadata.QuestionText
	}
	return pattern.MatchString(text)
}

func contains(values []string, candidate string) bool {
	for _, v := range values {
		if v == candidate {
			return true
		}
	}
	return false
}
