package rubric

// IsQuestionSpecific reports whether the named trait is defined for a single
// question rather than the whole benchmark.
//
// The provenance tag recorded on the evaluation rubric is authoritative when
// present; set-membership against the global rubric is the fallback. Without
// a global rubric every trait classifies as question-specific, so nothing is
// silently promoted to shared.
func IsQuestionSpecific(name string, global, evaluation *Rubric) bool {
	if evaluation != nil {
		if trait, ok := evaluation.Find(name); ok {
			switch trait.TraitOrigin() {
			case OriginGlobal:
				return false
			case OriginQuestionSpecific:
				return true
			}
		}
	}
	if global == nil {
		return true
	}
	_, ok := global.Find(name)
	return !ok
}
