package review

import (
	"veriq/internal/filter"
	"veriq/internal/result"
)

// formatOutcome labels a result for the outcome column. An overridden
// abstention trumps the recorded verify outcome.
func formatOutcome(r result.VerificationResult) string {
	if r.Abstained() {
		return "abstained"
	}
	switch filter.OutcomeOf(r) {
	case filter.OutcomePassed:
		return "passed"
	case filter.OutcomeFailed:
		return "failed"
	default:
		return "n/a"
	}
}

// truncate shortens text to width runes with an ellipsis.
func truncate(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
