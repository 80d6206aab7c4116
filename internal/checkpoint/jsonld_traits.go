package checkpoint

import (
	"encoding/json"
	"fmt"

	"veriq/internal/rubric"
)

// ratingDiscriminator returns the additionalType tag for a trait mechanism
// and partition.
func ratingDiscriminator(mechanism rubric.Mechanism, origin rubric.Origin) string {
	global := origin != rubric.OriginQuestionSpecific
	switch mechanism {
	case rubric.MechanismLLM:
		if global {
			return RatingGlobalLLM
		}
		return RatingQuestionLLM
	case rubric.MechanismRegex:
		if global {
			return RatingGlobalRegex
		}
		return RatingQuestionRegex
	case rubric.MechanismCallable:
		if global {
			return RatingGlobalCallable
		}
		return RatingQuestionCallable
	case rubric.MechanismMetric:
		if global {
			return RatingGlobalMetric
		}
		return RatingQuestionMetric
	}
	return ""
}

// ratingsForRubric renders every trait of a rubric as raw rating JSON.
func ratingsForRubric(r *rubric.Rubric, origin rubric.Origin) ([]json.RawMessage, error) {
	if r == nil {
		return nil, nil
	}
	var ratings []json.RawMessage
	appendRating := func(rating Rating) error {
		data, err := json.Marshal(rating)
		if err != nil {
			return fmt.Errorf("encode rating %q: %w", rating.Name, err)
		}
		ratings = append(ratings, data)
		return nil
	}
	for _, t := range r.LLMTraits {
		rating := Rating{
			Type:           "Rating",
			AdditionalType: ratingDiscriminator(rubric.MechanismLLM, origin),
			Name:           t.Name,
			Description:    t.Description,
			BestRating:     t.MaxScore,
			WorstRating:    t.MinScore,
			AdditionalProperty: []PropertyValue{
				{Type: "PropertyValue", Name: "kind", Value: string(t.Kind)},
			},
		}
		if err := appendRating(rating); err != nil {
			return nil, err
		}
	}
	for _, t := range r.RegexTraits {
		rating := Rating{
			Type:           "Rating",
			AdditionalType: ratingDiscriminator(rubric.MechanismRegex, origin),
			Name:           t.Name,
			Description:    t.Description,
			AdditionalProperty: []PropertyValue{
				{Type: "PropertyValue", Name: "kind", Value: string(t.Kind)},
				{Type: "PropertyValue", Name: "pattern", Value: t.Pattern},
				{Type: "PropertyValue", Name: "match_type", Value: t.MatchType},
				{Type: "PropertyValue", Name: "case_sensitive", Value: t.CaseSensitive},
			},
		}
		if err := appendRating(rating); err != nil {
			return nil, err
		}
	}
	for _, t := range r.CallableTraits {
		rating := Rating{
			Type:           "Rating",
			AdditionalType: ratingDiscriminator(rubric.MechanismCallable, origin),
			Name:           t.Name,
			Description:    t.Description,
			AdditionalProperty: []PropertyValue{
				{Type: "PropertyValue", Name: "kind", Value: string(t.Kind)},
				{Type: "PropertyValue", Name: "callable_name", Value: t.CallableName},
			},
		}
		if err := appendRating(rating); err != nil {
			return nil, err
		}
	}
	for _, t := range r.MetricTraits {
		rating := Rating{
			Type:           "Rating",
			AdditionalType: ratingDiscriminator(rubric.MechanismMetric, origin),
			Name:           t.Name,
			Description:    t.Description,
			AdditionalProperty: []PropertyValue{
				{Type: "PropertyValue", Name: "kind", Value: string(t.Kind)},
				{Type: "PropertyValue", Name: "metrics", Value: t.Metrics},
			},
		}
		if err := appendRating(rating); err != nil {
			return nil, err
		}
	}
	return ratings, nil
}

// decodedRating is the outcome of reading one raw rating: either a trait with
// its partition, or an opaque payload whose discriminator was not recognized.
type decodedRating struct {
	origin rubric.Origin
	trait  rubric.Trait
	opaque map[string]any
}

// decodeRating parses a raw rating, preserving unrecognized discriminators as
// opaque payloads instead of dropping them.
func decodeRating(raw json.RawMessage) (decodedRating, error) {
	var rating Rating
	if err := json.Unmarshal(raw, &rating); err != nil {
		return decodedRating{}, fmt.Errorf("decode rating: %w", err)
	}
	props := map[string]any{}
	for _, p := range rating.AdditionalProperty {
		props[p.Name] = p.Value
	}
	kind := rubric.TraitKind(stringProp(props, "kind"))

	var origin rubric.Origin
	var mechanism rubric.Mechanism
	switch rating.AdditionalType {
	case RatingGlobalLLM:
		origin, mechanism = rubric.OriginGlobal, rubric.MechanismLLM
	case RatingGlobalRegex:
		origin, mechanism = rubric.OriginGlobal, rubric.MechanismRegex
	case RatingGlobalCallable:
		origin, mechanism = rubric.OriginGlobal, rubric.MechanismCallable
	case RatingGlobalMetric:
		origin, mechanism = rubric.OriginGlobal, rubric.MechanismMetric
	case RatingQuestionLLM:
		origin, mechanism = rubric.OriginQuestionSpecific, rubric.MechanismLLM
	case RatingQuestionRegex:
		origin, mechanism = rubric.OriginQuestionSpecific, rubric.MechanismRegex
	case RatingQuestionCallable:
		origin, mechanism = rubric.OriginQuestionSpecific, rubric.MechanismCallable
	case RatingQuestionMetric:
		origin, mechanism = rubric.OriginQuestionSpecific, rubric.MechanismMetric
	default:
		var opaque map[string]any
		if err := json.Unmarshal(raw, &opaque); err != nil {
			return decodedRating{}, fmt.Errorf("decode unrecognized rating: %w", err)
		}
		return decodedRating{opaque: opaque}, nil
	}

	switch mechanism {
	case rubric.MechanismLLM:
		return decodedRating{origin: origin, trait: rubric.LLMTrait{
			Name:        rating.Name,
			Description: rating.Description,
			Kind:        kind,
			MinScore:    rating.WorstRating,
			MaxScore:    rating.BestRating,
			Origin:      origin,
		}}, nil
	case rubric.MechanismRegex:
		return decodedRating{origin: origin, trait: rubric.RegexTrait{
			Name:          rating.Name,
			Description:   rating.Description,
			Kind:          kind,
			Pattern:       stringProp(props, "pattern"),
			MatchType:     stringProp(props, "match_type"),
			CaseSensitive: boolProp(props, "case_sensitive"),
			Origin:        origin,
		}}, nil
	case rubric.MechanismCallable:
		return decodedRating{origin: origin, trait: rubric.CallableTrait{
			Name:         rating.Name,
			Description:  rating.Description,
			Kind:         kind,
			CallableName: stringProp(props, "callable_name"),
			Origin:       origin,
		}}, nil
	default:
		metrics, err := reencode[[]string](props["metrics"])
		if err != nil {
			return decodedRating{}, fmt.Errorf("decode metrics for %q: %w", rating.Name, err)
		}
		return decodedRating{origin: origin, trait: rubric.MetricTrait{
			Name:        rating.Name,
			Description: rating.Description,
			Kind:        kind,
			Metrics:     metrics,
			Origin:      origin,
		}}, nil
	}
}

// addTrait appends a decoded trait to the rubric collection its mechanism
// belongs to.
func addTrait(r *rubric.Rubric, trait rubric.Trait) {
	switch t := trait.(type) {
	case rubric.LLMTrait:
		r.LLMTraits = append(r.LLMTraits, t)
	case rubric.RegexTrait:
		r.RegexTraits = append(r.RegexTraits, t)
	case rubric.CallableTrait:
		r.CallableTraits = append(r.CallableTraits, t)
	case rubric.MetricTrait:
		r.MetricTraits = append(r.MetricTraits, t)
	}
}

func stringProp(props map[string]any, name string) string {
	if v, ok := props[name].(string); ok {
		return v
	}
	return ""
}

func boolProp(props map[string]any, name string) bool {
	if v, ok := props[name].(bool); ok {
		return v
	}
	return false
}

// reencode converts a decoded JSON value into a concrete type by another
// marshal round trip.
func reencode[T any](value any) (T, error) {
	var out T
	if value == nil {
		return out, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
