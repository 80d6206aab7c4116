package rubric

// Merge combines a global rubric with a question-specific rubric into the
// rubric used for one evaluation. Global traits come first; a question trait
// with a name already present in the global rubric is skipped. Every trait in
// the merged rubric carries its provenance tag so later reads never have to
// re-derive it from mutable global state.
func Merge(global, question *Rubric) *Rubric {
	if global == nil && question == nil {
		return nil
	}
	merged := &Rubric{}
	seen := map[string]struct{}{}
	if global != nil {
		for _, t := range global.LLMTraits {
			t.Origin = OriginGlobal
			merged.LLMTraits = append(merged.LLMTraits, t)
			seen[t.Name] = struct{}{}
		}
		for _, t := range global.RegexTraits {
			t.Origin = OriginGlobal
			merged.RegexTraits = append(merged.RegexTraits, t)
			seen[t.Name] = struct{}{}
		}
		for _, t := range global.CallableTraits {
			t.Origin = OriginGlobal
			merged.CallableTraits = append(merged.CallableTraits, t)
			seen[t.Name] = struct{}{}
		}
		for _, t := range global.MetricTraits {
			t.Origin = OriginGlobal
			merged.MetricTraits = append(merged.MetricTraits, t)
			seen[t.Name] = struct{}{}
		}
	}
	if question != nil {
		for _, t := range question.LLMTraits {
			if _, dup := seen[t.Name]; dup {
				continue
			}
			t.Origin = OriginQuestionSpecific
			merged.LLMTraits = append(merged.LLMTraits, t)
		}
		for _, t := range question.RegexTraits {
			if _, dup := seen[t.Name]; dup {
				continue
			}
			t.Origin = OriginQuestionSpecific
			merged.RegexTraits = append(merged.RegexTraits, t)
		}
		for _, t := range question.CallableTraits {
			if _, dup := seen[t.Name]; dup {
				continue
			}
			t.Origin = OriginQuestionSpecific
			merged.CallableTraits = append(merged.CallableTraits, t)
		}
		for _, t := range question.MetricTraits {
			if _, dup := seen[t.Name]; dup {
				continue
			}
			t.Origin = OriginQuestionSpecific
			merged.MetricTraits = append(merged.MetricTraits, t)
		}
	}
	return merged
}
