package report

import (
	"sort"

	"veriq/internal/filter"
	"veriq/internal/result"
)

// Summary aggregates verification outcomes for a result set.
type Summary struct {
	Total         int
	Passed        int
	Failed        int
	NotApplicable int
	Abstained     int
	ByModel       []ModelSummary
}

// ModelSummary aggregates outcomes per answering model.
type ModelSummary struct {
	Model  string
	Total  int
	Passed int
}

// PassRate returns the passed fraction over results with a recorded outcome.
func (s Summary) PassRate() float64 {
	decided := s.Passed + s.Failed
	if decided == 0 {
		return 0
	}
	return float64(s.Passed) / float64(decided)
}

// Summarize tallies outcomes, abstentions, and per-model pass counts.
func Summarize(results []result.VerificationResult) Summary {
	summary := Summary{Total: len(results)}
	perModel := map[string]*ModelSummary{}
	for _, r := range results {
		outcome := filter.OutcomeOf(r)
		switch outcome {
		case filter.OutcomePassed:
			summary.Passed++
		case filter.OutcomeFailed:
			summary.Failed++
		default:
			summary.NotApplicable++
		}
		if r.Abstained() {
			summary.Abstained++
		}

		model := "unknown"
		if r.Metadata != nil && r.Metadata.AnsweringModel != "" {
			model = r.Metadata.AnsweringModel
		}
		ms, ok := perModel[model]
		if !ok {
			ms = &ModelSummary{Model: model}
			perModel[model] = ms
		}
		ms.Total++
		if outcome == filter.OutcomePassed {
			ms.Passed++
		}
	}

	models := make([]string, 0, len(perModel))
	for model := range perModel {
		models = append(models, model)
	}
	sort.Strings(models)
	for _, model := range models {
		summary.ByModel = append(summary.ByModel, *perModel[model])
	}
	return summary
}
