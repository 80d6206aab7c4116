package server

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"veriq/internal/filter"
)

// predicatesFromQuery maps URL query parameters onto filter predicates.
// Every parameter is optional; an unparsable value is a client error.
func predicatesFromQuery(values url.Values) (filter.Predicates, error) {
	var p filter.Predicates

	if v := values.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("completed must be a boolean: %q", v)
		}
		p.Completed = &completed
	}
	if v := values.Get("outcome"); v != "" {
		switch filter.Outcome(v) {
		case filter.OutcomePassed, filter.OutcomeFailed, filter.OutcomeNotApplicable:
			p.Outcome = filter.Outcome(v)
		default:
			return p, fmt.Errorf("outcome must be passed, failed, or not_applicable: %q", v)
		}
	}
	if v := values.Get("has_granular"); v != "" {
		granular, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("has_granular must be a boolean: %q", v)
		}
		p.HasGranular = &granular
	}
	p.AnsweringModels = values["answering_model"]
	p.ParsingModels = values["parsing_model"]
	if v := values.Get("model_match"); v != "" {
		switch filter.ModelMatch(v) {
		case filter.MatchUnion, filter.MatchIntersection:
			p.ModelMatch = filter.ModelMatch(v)
		default:
			return p, fmt.Errorf("model_match must be union or intersection: %q", v)
		}
	}
	if v := values.Get("start"); v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return p, fmt.Errorf("start must be RFC 3339: %q", v)
		}
		p.Start = &start
	}
	if v := values.Get("end"); v != "" {
		end, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return p, fmt.Errorf("end must be RFC 3339: %q", v)
		}
		p.End = &end
	}
	p.QuestionContains = values.Get("q")
	p.QuestionPattern = values.Get("pattern")
	return p, nil
}

// describeFilters renders the applied query parameters for export metadata.
func describeFilters(values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return "none"
	}
	return encoded
}
