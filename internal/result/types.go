package result

import (
	"time"

	"veriq/internal/rubric"
)

// Metadata identifies one verification run of one question.
type Metadata struct {
	QuestionID             string  `json:"question_id"`
	TemplateID             string  `json:"template_id,omitempty"`
	QuestionText           string  `json:"question_text,omitempty"`
	RawAnswer              string  `json:"raw_answer,omitempty"`
	AnsweringModel         string  `json:"answering_model,omitempty"`
	ParsingModel           string  `json:"parsing_model,omitempty"`
	Replicate              int     `json:"replicate,omitempty"`
	RunName                string  `json:"run_name,omitempty"`
	JobID                  string  `json:"job_id,omitempty"`
	ExecutionSeconds       float64 `json:"execution_time,omitempty"`
	Timestamp              string  `json:"timestamp,omitempty"`
	CompletedWithoutErrors *bool   `json:"completed_without_errors,omitempty"`
	Error                  string  `json:"error,omitempty"`
}

// RegexValidation records a per-field pattern check performed during parsing.
type RegexValidation struct {
	Pattern string `json:"pattern,omitempty"`
	Valid   bool   `json:"valid"`
}

// EmbeddingCheck records an embedding-similarity verification pass.
type EmbeddingCheck struct {
	Score           float64 `json:"score"`
	OverrideApplied bool    `json:"override_applied,omitempty"`
	Model           string  `json:"model,omitempty"`
}

// AbstentionCheck records whether the model declined to answer.
type AbstentionCheck struct {
	Detected        bool   `json:"detected"`
	OverrideApplied bool   `json:"override_applied,omitempty"`
	Reasoning       string `json:"reasoning,omitempty"`
}

// SufficiencyCheck records whether the response carried enough information
// to be judged at all.
type SufficiencyCheck struct {
	Detected  bool   `json:"detected"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Template holds the parsed model output and its verification outcome.
type Template struct {
	RawResponse          string                     `json:"raw_response,omitempty"`
	ParsedGroundTruth    map[string]any             `json:"parsed_ground_truth,omitempty"`
	ParsedResponse       map[string]any             `json:"parsed_response,omitempty"`
	VerifyResult         *bool                      `json:"verify_result,omitempty"`
	VerifyGranularResult map[string]any             `json:"verify_granular_result,omitempty"`
	RegexValidations     map[string]RegexValidation `json:"regex_validations,omitempty"`
	EmbeddingCheck       *EmbeddingCheck            `json:"embedding_check,omitempty"`
	Abstention           *AbstentionCheck           `json:"abstention_check,omitempty"`
	Sufficiency          *SufficiencyCheck          `json:"sufficiency_check,omitempty"`
}

// RubricScores holds per-trait scores split by trait mechanism, plus the
// rubric snapshot actually used for the evaluation. The snapshot may differ
// from the configured global rubric because question-specific traits were
// merged in; it is recorded verbatim so exports never re-derive provenance
// from mutable global state.
type RubricScores struct {
	LLMScores        map[string]any                `json:"llm_scores,omitempty"`
	RegexScores      map[string]bool               `json:"regex_scores,omitempty"`
	CallableScores   map[string]bool               `json:"callable_scores,omitempty"`
	MetricScores     map[string]map[string]float64 `json:"metric_scores,omitempty"`
	EvaluationRubric *rubric.Rubric                `json:"evaluation_rubric,omitempty"`
}

// Score returns the recorded value for a trait name, searching the four
// mechanism maps in collection order.
func (s *RubricScores) Score(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	if v, ok := s.LLMScores[name]; ok {
		return v, true
	}
	if v, ok := s.RegexScores[name]; ok {
		return v, true
	}
	if v, ok := s.CallableScores[name]; ok {
		return v, true
	}
	if v, ok := s.MetricScores[name]; ok {
		return v, true
	}
	return nil, false
}

// TraitNames returns every scored trait name in mechanism order.
func (s *RubricScores) TraitNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.LLMScores)+len(s.RegexScores)+len(s.CallableScores)+len(s.MetricScores))
	names = append(names, sortedKeys(s.LLMScores)...)
	names = append(names, sortedKeysBool(s.RegexScores)...)
	names = append(names, sortedKeysBool(s.CallableScores)...)
	names = append(names, sortedKeysMetric(s.MetricScores)...)
	return names
}

// HallucinationRisk labels how likely an excerpt is fabricated.
type HallucinationRisk string

const (
	RiskNone   HallucinationRisk = "none"
	RiskLow    HallucinationRisk = "low"
	RiskMedium HallucinationRisk = "medium"
	RiskHigh   HallucinationRisk = "high"
)

// Excerpt is a verbatim span extracted to back a judged attribute.
type Excerpt struct {
	Text              string            `json:"text"`
	SimilarityScore   float64           `json:"similarity_score,omitempty"`
	HallucinationRisk HallucinationRisk `json:"hallucination_risk,omitempty"`
}

// DeepJudgment holds multi-stage judging artifacts: extracted excerpts,
// per-attribute reasoning, and the number of attributes no excerpt could back.
type DeepJudgment struct {
	Excerpts              map[string][]Excerpt `json:"excerpts,omitempty"`
	Reasoning             map[string]string    `json:"reasoning,omitempty"`
	UnsupportedAttributes int                  `json:"unsupported_attributes,omitempty"`
}

// VerificationResult is one outcome of running one question x answering-model
// x parsing-model x replicate combination through the remote evaluator. All
// four sub-records are independently optional but keyed to the same result.
type VerificationResult struct {
	Metadata           *Metadata     `json:"metadata,omitempty"`
	Template           *Template     `json:"template,omitempty"`
	Rubric             *RubricScores `json:"rubric,omitempty"`
	DeepJudgment       *DeepJudgment `json:"deep_judgment,omitempty"`
	DeepJudgmentRubric *DeepJudgment `json:"deep_judgment_rubric,omitempty"`
}

// QuestionID returns the metadata question id, or empty when absent.
func (r VerificationResult) QuestionID() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata.QuestionID
}

// JobID returns the metadata job id, or empty when absent.
func (r VerificationResult) JobID() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata.JobID
}

// Timestamp returns the raw metadata timestamp string.
func (r VerificationResult) Timestamp() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata.Timestamp
}

// ParsedTimestamp parses the metadata timestamp as RFC3339.
func (r VerificationResult) ParsedTimestamp() (time.Time, bool) {
	raw := r.Timestamp()
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Abstained reports whether abstention was detected and its override applied.
// Exports replace the completion flag with the literal "abstained" for such
// results.
func (r VerificationResult) Abstained() bool {
	return r.Template != nil &&
		r.Template.Abstention != nil &&
		r.Template.Abstention.Detected &&
		r.Template.Abstention.OverrideApplied
}

// CompletedWithoutErrors reports the completion flag, false when absent.
func (r VerificationResult) CompletedWithoutErrors() bool {
	return r.Metadata != nil &&
		r.Metadata.CompletedWithoutErrors != nil &&
		*r.Metadata.CompletedWithoutErrors
}
