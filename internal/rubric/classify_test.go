package rubric

import "testing"

func globalFixture() *Rubric {
	return &Rubric{
		LLMTraits: []LLMTrait{
			{Name: "Conciseness", Kind: KindBoolean},
			{Name: "Directness", Kind: KindScore},
		},
		RegexTraits: []RegexTrait{
			{Name: "CitesSource", Kind: KindBoolean, Pattern: `\[\d+\]`},
		},
	}
}

// TestIsQuestionSpecificByMembership verifies set-membership classification
// against the global rubric.
func TestIsQuestionSpecificByMembership(t *testing.T) {
	global := globalFixture()
	evaluation := Merge(global, &Rubric{
		LLMTraits: []LLMTrait{{Name: "mentions_tradeoffs", Kind: KindScore}},
	})

	if IsQuestionSpecific("Conciseness", global, evaluation) {
		t.Fatalf("Conciseness should be global")
	}
	if IsQuestionSpecific("CitesSource", global, evaluation) {
		t.Fatalf("CitesSource should be global")
	}
	if !IsQuestionSpecific("mentions_tradeoffs", global, evaluation) {
		t.Fatalf("mentions_tradeoffs should be question-specific")
	}
}

// TestIsQuestionSpecificWithoutGlobal verifies the conservative default: with
// no global rubric every trait is question-specific.
func TestIsQuestionSpecificWithoutGlobal(t *testing.T) {
	evaluation := &Rubric{LLMTraits: []LLMTrait{{Name: "Conciseness", Kind: KindBoolean}}}
	if !IsQuestionSpecific("Conciseness", nil, evaluation) {
		t.Fatalf("expected question-specific without a global rubric")
	}
	if !IsQuestionSpecific("unknown", nil, nil) {
		t.Fatalf("expected question-specific for unknown trait without rubrics")
	}
}

// TestIsQuestionSpecificPrefersProvenance verifies the recorded origin tag
// wins over set-membership.
func TestIsQuestionSpecificPrefersProvenance(t *testing.T) {
	evaluation := &Rubric{
		LLMTraits: []LLMTrait{{Name: "Conciseness", Kind: KindBoolean, Origin: OriginQuestionSpecific}},
	}
	// The global rubric also names Conciseness, but the evaluation snapshot
	// recorded it as question-specific.
	if !IsQuestionSpecific("Conciseness", globalFixture(), evaluation) {
		t.Fatalf("provenance tag should take precedence over membership")
	}
}
