package checkpoint

// Linked-data checkpoint shapes, expressed in schema.org vocabulary. Each
// question becomes an item in a dated feed, each rubric trait a rating
// definition, and scalar metadata a typed property value.

import "encoding/json"

// LinkedDataVersion is the format version carried in the @context block.
const LinkedDataVersion = "3.0.0-jsonld"

// SchemaOrgVocab identifies the vocabulary used by linked-data checkpoints.
const SchemaOrgVocab = "https://schema.org/"

// Rating discriminators. The additionalType tag records both the trait's
// partition (global vs question-specific) and its mechanism so the reverse
// conversion reconstructs the rubric without external context.
const (
	RatingGlobalLLM              = "GlobalLLMRubricTrait"
	RatingGlobalRegex            = "GlobalRegexRubricTrait"
	RatingGlobalCallable         = "GlobalCallableRubricTrait"
	RatingGlobalMetric           = "GlobalMetricRubricTrait"
	RatingQuestionLLM            = "QuestionSpecificLLMRubricTrait"
	RatingQuestionRegex          = "QuestionSpecificRegexRubricTrait"
	RatingQuestionCallable       = "QuestionSpecificCallableRubricTrait"
	RatingQuestionMetric         = "QuestionSpecificMetricRubricTrait"
	unrecognizedRatingsMetaKey   = "unrecognized_ratings"
	customMetadataPropertyPrefix = "metadata:"
)

// Context is the @context block of a linked-data checkpoint.
type Context struct {
	Vocab   string `json:"@vocab"`
	Version string `json:"version"`
}

// PropertyValue is a schema.org typed name/value pair.
type PropertyValue struct {
	Type  string `json:"@type"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Rating is a schema.org rating definition for one rubric trait.
type Rating struct {
	Type               string          `json:"@type"`
	AdditionalType     string          `json:"additionalType"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	BestRating         *float64        `json:"bestRating,omitempty"`
	WorstRating        *float64        `json:"worstRating,omitempty"`
	AdditionalProperty []PropertyValue `json:"additionalProperty,omitempty"`
}

// Answer is the accepted answer of a feed question.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// Question is the payload of one feed item. Ratings are kept as raw JSON so
// forward-compatible extensions survive a read/write cycle untouched.
type Question struct {
	Type               string            `json:"@type"`
	Text               string            `json:"text"`
	AcceptedAnswer     Answer            `json:"acceptedAnswer"`
	Rating             []json.RawMessage `json:"rating,omitempty"`
	AdditionalProperty []PropertyValue   `json:"additionalProperty,omitempty"`
}

// FeedItem is one dated entry of the checkpoint feed.
type FeedItem struct {
	Type         string   `json:"@type"`
	Identifier   string   `json:"identifier"`
	DateCreated  string   `json:"dateCreated,omitempty"`
	DateModified string   `json:"dateModified"`
	Item         Question `json:"item"`
}

// LinkedData is the full linked-data checkpoint document.
type LinkedData struct {
	Context            Context           `json:"@context"`
	Type               string            `json:"@type"`
	Version            string            `json:"version"`
	Name               string            `json:"name,omitempty"`
	Rating             []json.RawMessage `json:"rating,omitempty"`
	AdditionalProperty []PropertyValue   `json:"additionalProperty,omitempty"`
	DataFeedElement    []FeedItem        `json:"dataFeedElement"`
}
