package review

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"veriq/internal/filter"
	"veriq/internal/result"
)

// visibleResults narrows the result set to the active outcome filter,
// preserving order.
func visibleResults(results []result.VerificationResult, outcome filter.Outcome) []result.VerificationResult {
	if outcome == filter.OutcomeAny {
		return results
	}
	out := make([]result.VerificationResult, 0, len(results))
	for _, r := range results {
		if filter.OutcomeOf(r) == outcome {
			out = append(out, r)
		}
	}
	return out
}

// rowsFor converts results into table rows.
func rowsFor(results []result.VerificationResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for i, r := range results {
		var model, question string
		if r.Metadata != nil {
			model = r.Metadata.AnsweringModel
			question = r.Metadata.QuestionText
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			r.QuestionID(),
			truncate(question, questionTextWidth),
			r.JobID(),
			model,
			r.Timestamp(),
			formatOutcome(r),
		})
	}
	return rows
}
