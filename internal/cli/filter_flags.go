package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"veriq/internal/filter"
)

// filterFlags collects the result-filtering flags shared by export, report,
// and review.
type filterFlags struct {
	completed      string
	outcome        string
	hasGranular    string
	answeringModel string
	parsingModel   string
	modelMatch     string
	start          string
	end            string
	contains       string
	pattern        string
}

// register installs the shared filter flags on a flag set.
func (f *filterFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.completed, "completed", "", "Filter by completion: true or false")
	fs.StringVar(&f.outcome, "outcome", "", "Filter by outcome: passed, failed, or not_applicable")
	fs.StringVar(&f.hasGranular, "has-granular", "", "Filter by presence of granular results: true or false")
	fs.StringVar(&f.answeringModel, "answering-model", "", "Comma-separated answering models")
	fs.StringVar(&f.parsingModel, "parsing-model", "", "Comma-separated parsing models")
	fs.StringVar(&f.modelMatch, "model-match", "", "Combine model filters: union or intersection")
	fs.StringVar(&f.start, "start", "", "Keep results at or after this RFC 3339 time")
	fs.StringVar(&f.end, "end", "", "Keep results at or before this RFC 3339 time")
	fs.StringVar(&f.contains, "contains", "", "Keep results whose question text contains this string")
	fs.StringVar(&f.pattern, "pattern", "", "Keep results whose question text matches this regexp")
}

// predicates converts the flag values into filter predicates.
func (f *filterFlags) predicates() (filter.Predicates, error) {
	var p filter.Predicates
	if f.completed != "" {
		v, err := strconv.ParseBool(f.completed)
		if err != nil {
			return p, fmt.Errorf("--completed must be true or false: %q", f.completed)
		}
		p.Completed = &v
	}
	if f.outcome != "" {
		switch filter.Outcome(f.outcome) {
		case filter.OutcomePassed, filter.OutcomeFailed, filter.OutcomeNotApplicable:
			p.Outcome = filter.Outcome(f.outcome)
		default:
			return p, fmt.Errorf("--outcome must be passed, failed, or not_applicable: %q", f.outcome)
		}
	}
	if f.hasGranular != "" {
		v, err := strconv.ParseBool(f.hasGranular)
		if err != nil {
			return p, fmt.Errorf("--has-granular must be true or false: %q", f.hasGranular)
		}
		p.HasGranular = &v
	}
	p.AnsweringModels = splitList(f.answeringModel)
	p.ParsingModels = splitList(f.parsingModel)
	if f.modelMatch != "" {
		switch filter.ModelMatch(f.modelMatch) {
		case filter.MatchUnion, filter.MatchIntersection:
			p.ModelMatch = filter.ModelMatch(f.modelMatch)
		default:
			return p, fmt.Errorf("--model-match must be union or intersection: %q", f.modelMatch)
		}
	}
	if f.start != "" {
		t, err := time.Parse(time.RFC3339, f.start)
		if err != nil {
			return p, fmt.Errorf("--start must be RFC 3339: %q", f.start)
		}
		p.Start = &t
	}
	if f.end != "" {
		t, err := time.Parse(time.RFC3339, f.end)
		if err != nil {
			return p, fmt.Errorf("--end must be RFC 3339: %q", f.end)
		}
		p.End = &t
	}
	p.QuestionContains = f.contains
	p.QuestionPattern = f.pattern
	return p, nil
}

// describe renders the active filters for export metadata.
func (f *filterFlags) describe() string {
	parts := []string{}
	add := func(name, value string) {
		if value != "" {
			parts = append(parts, name+"="+value)
		}
	}
	add("completed", f.completed)
	add("outcome", f.outcome)
	add("has_granular", f.hasGranular)
	add("answering_model", f.answeringModel)
	add("parsing_model", f.parsingModel)
	add("model_match", f.modelMatch)
	add("start", f.start)
	add("end", f.end)
	add("contains", f.contains)
	add("pattern", f.pattern)
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
