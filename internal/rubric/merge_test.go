package rubric

import "testing"

// TestMergeTagsProvenance verifies merged traits carry their origin.
func TestMergeTagsProvenance(t *testing.T) {
	global := globalFixture()
	question := &Rubric{
		LLMTraits:    []LLMTrait{{Name: "mentions_tradeoffs", Kind: KindScore}},
		MetricTraits: []MetricTrait{{Name: "overlap", Kind: KindScore, Metrics: []string{"precision", "recall"}}},
	}

	merged := Merge(global, question)
	if merged.TraitCount() != 5 {
		t.Fatalf("expected 5 traits, got %d", merged.TraitCount())
	}
	trait, ok := merged.Find("Conciseness")
	if !ok || trait.TraitOrigin() != OriginGlobal {
		t.Fatalf("Conciseness should be tagged global, got %+v", trait)
	}
	trait, ok = merged.Find("mentions_tradeoffs")
	if !ok || trait.TraitOrigin() != OriginQuestionSpecific {
		t.Fatalf("mentions_tradeoffs should be tagged question-specific, got %+v", trait)
	}
	trait, ok = merged.Find("overlap")
	if !ok || trait.TraitMechanism() != MechanismMetric {
		t.Fatalf("overlap should keep its metric mechanism, got %+v", trait)
	}
}

// TestMergeSkipsShadowedQuestionTraits verifies a question trait never
// overrides a same-named global trait.
func TestMergeSkipsShadowedQuestionTraits(t *testing.T) {
	global := globalFixture()
	question := &Rubric{LLMTraits: []LLMTrait{{Name: "Conciseness", Kind: KindScore}}}

	merged := Merge(global, question)
	if merged.TraitCount() != global.TraitCount() {
		t.Fatalf("shadowed trait should be skipped, got %d traits", merged.TraitCount())
	}
	trait, _ := merged.Find("Conciseness")
	if trait.TraitKind() != KindBoolean {
		t.Fatalf("global definition should win, got kind %q", trait.TraitKind())
	}
}

// TestMergeNilInputs verifies nil rubrics merge without fabricating traits.
func TestMergeNilInputs(t *testing.T) {
	if Merge(nil, nil) != nil {
		t.Fatalf("merging two nil rubrics should return nil")
	}
	merged := Merge(nil, &Rubric{LLMTraits: []LLMTrait{{Name: "x", Kind: KindBoolean}}})
	trait, ok := merged.Find("x")
	if !ok || trait.TraitOrigin() != OriginQuestionSpecific {
		t.Fatalf("question-only merge should tag traits question-specific")
	}
}

// TestTraitNamesOrder verifies collection ordering is llm, regex, callable, metric.
func TestTraitNamesOrder(t *testing.T) {
	r := &Rubric{
		MetricTraits:   []MetricTrait{{Name: "m", Kind: KindScore, Metrics: []string{"f1"}}},
		LLMTraits:      []LLMTrait{{Name: "a", Kind: KindBoolean}},
		CallableTraits: []CallableTrait{{Name: "c", Kind: KindBoolean, CallableName: "check"}},
		RegexTraits:    []RegexTrait{{Name: "b", Kind: KindBoolean, Pattern: "x"}},
	}
	names := r.TraitNames()
	want := []string{"a", "b", "c", "m"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
}
