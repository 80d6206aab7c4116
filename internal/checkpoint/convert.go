package checkpoint

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"veriq/internal/rubric"
)

// PlainToUnified wraps a plain checkpoint: no global rubric, no dataset
// metadata. Question content is shared, not copied.
func PlainToUnified(c Checkpoint) Unified {
	return Unified{GlobalRubric: nil, Checkpoint: c}
}

// Plain unwraps the checkpoint mapping, discarding the container-level
// rubric and metadata.
func (u Unified) Plain() Checkpoint {
	return u.Checkpoint
}

// UnifiedToLinkedData renders a unified checkpoint as a schema.org data feed.
// Each item becomes a dated feed element, each global rubric trait a feed
// level rating definition, and each question-specific trait a rating attached
// to its question's item.
func UnifiedToLinkedData(u Unified) (LinkedData, error) {
	feedRatings, err := ratingsForRubric(u.GlobalRubric, rubric.OriginGlobal)
	if err != nil {
		return LinkedData{}, err
	}
	ld := LinkedData{
		Context: Context{Vocab: SchemaOrgVocab, Version: LinkedDataVersion},
		Type:    "DataFeed",
		Version: LinkedDataVersion,
		Rating:  feedRatings,
	}
	for _, key := range sortedMetadataKeys(u.DatasetMetadata) {
		if key == unrecognizedRatingsMetaKey {
			raws, err := reencode[[]json.RawMessage](u.DatasetMetadata[key])
			if err != nil {
				return LinkedData{}, fmt.Errorf("re-emit preserved feed ratings: %w", err)
			}
			ld.Rating = append(ld.Rating, raws...)
			continue
		}
		ld.AdditionalProperty = append(ld.AdditionalProperty, PropertyValue{
			Type: "PropertyValue", Name: key, Value: u.DatasetMetadata[key],
		})
	}

	ids := make([]string, 0, len(u.Checkpoint))
	for id := range u.Checkpoint {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		element, err := feedItem(id, u.Checkpoint[id])
		if err != nil {
			return LinkedData{}, err
		}
		ld.DataFeedElement = append(ld.DataFeedElement, element)
	}
	return ld, nil
}

func feedItem(id string, item Item) (FeedItem, error) {
	ratings, err := ratingsForRubric(item.QuestionRubric, rubric.OriginQuestionSpecific)
	if err != nil {
		return FeedItem{}, fmt.Errorf("item %s: %w", id, err)
	}
	question := Question{
		Type:           "Question",
		Text:           item.Question,
		AcceptedAnswer: Answer{Type: "Answer", Text: item.RawAnswer},
		Rating:         ratings,
		AdditionalProperty: []PropertyValue{
			{Type: "PropertyValue", Name: "finished", Value: item.Finished},
		},
	}
	if item.AnswerTemplate != "" {
		question.AdditionalProperty = append(question.AdditionalProperty, PropertyValue{
			Type: "PropertyValue", Name: "answer_template", Value: item.AnswerTemplate,
		})
	}
	if item.OriginalTemplate != "" {
		question.AdditionalProperty = append(question.AdditionalProperty, PropertyValue{
			Type: "PropertyValue", Name: "original_answer_template", Value: item.OriginalTemplate,
		})
	}
	if len(item.FewShotExamples) > 0 {
		question.AdditionalProperty = append(question.AdditionalProperty, PropertyValue{
			Type: "PropertyValue", Name: "few_shot_examples", Value: item.FewShotExamples,
		})
	}
	for _, key := range sortedMetadataKeys(item.CustomMetadata) {
		if key == unrecognizedRatingsMetaKey {
			// Opaque ratings captured on a previous read are re-emitted as
			// ratings, not as metadata.
			raws, err := reencode[[]json.RawMessage](item.CustomMetadata[key])
			if err != nil {
				return FeedItem{}, fmt.Errorf("item %s: re-emit preserved ratings: %w", id, err)
			}
			question.Rating = append(question.Rating, raws...)
			continue
		}
		question.AdditionalProperty = append(question.AdditionalProperty, PropertyValue{
			Type: "PropertyValue", Name: customMetadataPropertyPrefix + key, Value: item.CustomMetadata[key],
		})
	}
	return FeedItem{
		Type:         "DataFeedItem",
		Identifier:   id,
		DateCreated:  item.DateCreated,
		DateModified: item.LastModified,
		Item:         question,
	}, nil
}

// LinkedDataToUnified reconstructs a unified checkpoint from its linked-data
// form. Ratings with unrecognized discriminators are preserved as opaque
// metadata, never dropped, to tolerate forward-compatible extensions.
func LinkedDataToUnified(ld LinkedData) (Unified, error) {
	u := Unified{Checkpoint: Checkpoint{}}

	var global rubric.Rubric
	var opaqueFeedRatings []any
	for _, raw := range ld.Rating {
		decoded, err := decodeRating(raw)
		if err != nil {
			return Unified{}, err
		}
		if decoded.opaque != nil {
			opaqueFeedRatings = append(opaqueFeedRatings, decoded.opaque)
			continue
		}
		addTrait(&global, decoded.trait)
	}
	if global.TraitCount() > 0 {
		u.GlobalRubric = &global
	}
	for _, prop := range ld.AdditionalProperty {
		if u.DatasetMetadata == nil {
			u.DatasetMetadata = map[string]any{}
		}
		u.DatasetMetadata[prop.Name] = prop.Value
	}
	if len(opaqueFeedRatings) > 0 {
		if u.DatasetMetadata == nil {
			u.DatasetMetadata = map[string]any{}
		}
		u.DatasetMetadata[unrecognizedRatingsMetaKey] = opaqueFeedRatings
	}

	for _, element := range ld.DataFeedElement {
		item, err := checkpointItem(element)
		if err != nil {
			return Unified{}, err
		}
		u.Checkpoint[element.Identifier] = item
	}
	return u, nil
}

func checkpointItem(element FeedItem) (Item, error) {
	item := Item{
		Question:     element.Item.Text,
		RawAnswer:    element.Item.AcceptedAnswer.Text,
		DateCreated:  element.DateCreated,
		LastModified: element.DateModified,
	}

	var question rubric.Rubric
	var opaqueRatings []any
	for _, raw := range element.Item.Rating {
		decoded, err := decodeRating(raw)
		if err != nil {
			return Item{}, fmt.Errorf("item %s: %w", element.Identifier, err)
		}
		if decoded.opaque != nil {
			opaqueRatings = append(opaqueRatings, decoded.opaque)
			continue
		}
		addTrait(&question, decoded.trait)
	}
	if question.TraitCount() > 0 {
		item.QuestionRubric = &question
	}

	for _, prop := range element.Item.AdditionalProperty {
		switch prop.Name {
		case "finished":
			if v, ok := prop.Value.(bool); ok {
				item.Finished = v
			}
		case "answer_template":
			if v, ok := prop.Value.(string); ok {
				item.AnswerTemplate = v
			}
		case "original_answer_template":
			if v, ok := prop.Value.(string); ok {
				item.OriginalTemplate = v
			}
		case "few_shot_examples":
			examples, err := reencode[[]QAPair](prop.Value)
			if err != nil {
				return Item{}, fmt.Errorf("item %s: decode few-shot examples: %w", element.Identifier, err)
			}
			item.FewShotExamples = examples
		default:
			if item.CustomMetadata == nil {
				item.CustomMetadata = map[string]any{}
			}
			item.CustomMetadata[strings.TrimPrefix(prop.Name, customMetadataPropertyPrefix)] = prop.Value
		}
	}
	if len(opaqueRatings) > 0 {
		if item.CustomMetadata == nil {
			item.CustomMetadata = map[string]any{}
		}
		item.CustomMetadata[unrecognizedRatingsMetaKey] = opaqueRatings
	}
	return item, nil
}

func sortedMetadataKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
