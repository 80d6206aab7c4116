package rubric

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue captures a validation problem in a rubric definition.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more rubric validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("rubric validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Validate checks trait names, kinds, score bounds, and kind-specific config.
func Validate(r *Rubric) error {
	collector := &issueCollector{}
	if r == nil {
		return nil
	}
	seen := map[string]struct{}{}
	checkCommon := func(field, name string, kind TraitKind) {
		if strings.TrimSpace(name) == "" {
			collector.add(field+".name", "is required")
			return
		}
		if _, dup := seen[name]; dup {
			collector.add(field+".name", fmt.Sprintf("duplicate trait %q", name))
		}
		seen[name] = struct{}{}
		switch kind {
		case KindBoolean, KindScore:
		default:
			collector.add(field+".kind", fmt.Sprintf("unknown kind %q", kind))
		}
	}
	for i, t := range r.LLMTraits {
		field := fmt.Sprintf("llm_traits[%d]", i)
		checkCommon(field, t.Name, t.Kind)
		if t.Kind == KindScore && t.MinScore != nil && t.MaxScore != nil && *t.MinScore >= *t.MaxScore {
			collector.add(field+".max_score", "must exceed min_score")
		}
	}
	for i, t := range r.RegexTraits {
		field := fmt.Sprintf("regex_traits[%d]", i)
		checkCommon(field, t.Name, t.Kind)
		if t.Pattern == "" {
			collector.add(field+".pattern", "is required")
		} else if _, err := regexp.Compile(t.Pattern); err != nil {
			collector.add(field+".pattern", fmt.Sprintf("does not compile: %v", err))
		}
	}
	for i, t := range r.CallableTraits {
		field := fmt.Sprintf("callable_traits[%d]", i)
		checkCommon(field, t.Name, t.Kind)
		if strings.TrimSpace(t.CallableName) == "" {
			collector.add(field+".callable_name", "is required")
		}
	}
	for i, t := range r.MetricTraits {
		field := fmt.Sprintf("metric_traits[%d]", i)
		checkCommon(field, t.Name, t.Kind)
		if len(t.Metrics) == 0 {
			collector.add(field+".metrics", "must include at least one entry")
		}
	}
	return collector.result()
}
