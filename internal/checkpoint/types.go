package checkpoint

import (
	"time"

	"veriq/internal/rubric"
)

// QAPair is one few-shot example attached to a question.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Item is the curated state of one benchmark question.
type Item struct {
	Question         string         `json:"question"`
	RawAnswer        string         `json:"raw_answer"`
	OriginalTemplate string         `json:"original_answer_template,omitempty"`
	AnswerTemplate   string         `json:"answer_template,omitempty"`
	DateCreated      string         `json:"date_created,omitempty"`
	LastModified     string         `json:"last_modified"`
	Finished         bool           `json:"finished"`
	QuestionRubric   *rubric.Rubric `json:"question_rubric,omitempty"`
	FewShotExamples  []QAPair       `json:"few_shot_examples,omitempty"`
	CustomMetadata   map[string]any `json:"custom_metadata,omitempty"`
}

// Checkpoint maps question ids to their curated items. Items are created
// when a question first appears and removed only by explicit user action,
// never as a side effect of reload or re-extraction.
type Checkpoint map[string]Item

// Unified wraps a checkpoint with the benchmark's global rubric and dataset
// metadata.
type Unified struct {
	Version         string         `json:"version,omitempty"`
	GlobalRubric    *rubric.Rubric `json:"global_rubric"`
	DatasetMetadata map[string]any `json:"dataset_metadata,omitempty"`
	Checkpoint      Checkpoint     `json:"checkpoint"`
}

// NewItem creates a checkpoint item for a question's first appearance. The
// current template starts as a copy of the original.
func NewItem(question, rawAnswer, template string, now time.Time) Item {
	stamp := now.UTC().Format(time.RFC3339)
	return Item{
		Question:         question,
		RawAnswer:        rawAnswer,
		OriginalTemplate: template,
		AnswerTemplate:   template,
		DateCreated:      stamp,
		LastModified:     stamp,
	}
}

// Mutate applies a change to an existing item and stamps last_modified.
// It reports whether the id existed.
func (c Checkpoint) Mutate(id string, now time.Time, change func(*Item)) bool {
	item, ok := c[id]
	if !ok {
		return false
	}
	change(&item)
	item.LastModified = now.UTC().Format(time.RFC3339)
	c[id] = item
	return true
}

// SetFinished flips the finished flag, stamping last_modified.
func (c Checkpoint) SetFinished(id string, finished bool, now time.Time) bool {
	return c.Mutate(id, now, func(item *Item) { item.Finished = finished })
}

// SetTemplate replaces the current answer template, stamping last_modified.
// The original template is never touched.
func (c Checkpoint) SetTemplate(id, template string, now time.Time) bool {
	return c.Mutate(id, now, func(item *Item) { item.AnswerTemplate = template })
}

// Remove deletes an item. Removal is an explicit user action.
func (c Checkpoint) Remove(id string) {
	delete(c, id)
}
