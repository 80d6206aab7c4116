package rubric

// TraitKind identifies how a trait is scored.
type TraitKind string

const (
	KindBoolean TraitKind = "boolean"
	KindScore   TraitKind = "score"
)

// Mechanism identifies how a trait is evaluated.
type Mechanism string

const (
	MechanismLLM      Mechanism = "llm"
	MechanismRegex    Mechanism = "regex"
	MechanismCallable Mechanism = "callable"
	MechanismMetric   Mechanism = "metric"
)

// Origin records which rubric a trait was defined in.
type Origin string

const (
	OriginGlobal           Origin = "global"
	OriginQuestionSpecific Origin = "question_specific"
)

// LLMTrait is scored by a judge model against its description.
type LLMTrait struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        TraitKind `json:"kind" yaml:"kind"`
	MinScore    *float64  `json:"min_score,omitempty" yaml:"min_score,omitempty"`
	MaxScore    *float64  `json:"max_score,omitempty" yaml:"max_score,omitempty"`
	Origin      Origin    `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// RegexTrait is scored by matching a pattern against the response text.
type RegexTrait struct {
	Name          string    `json:"name" yaml:"name"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	Kind          TraitKind `json:"kind" yaml:"kind"`
	Pattern       string    `json:"pattern" yaml:"pattern"`
	MatchType     string    `json:"match_type,omitempty" yaml:"match_type,omitempty"`
	CaseSensitive bool      `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty"`
	Origin        Origin    `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// CallableTrait is scored by a named evaluation function on the remote service.
type CallableTrait struct {
	Name         string    `json:"name" yaml:"name"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Kind         TraitKind `json:"kind" yaml:"kind"`
	CallableName string    `json:"callable_name" yaml:"callable_name"`
	Origin       Origin    `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// MetricTrait is scored by computing one or more named metrics.
type MetricTrait struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        TraitKind `json:"kind" yaml:"kind"`
	Metrics     []string  `json:"metrics" yaml:"metrics"`
	Origin      Origin    `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// Trait is the read-only view shared by the four trait shapes.
type Trait interface {
	TraitName() string
	TraitMechanism() Mechanism
	TraitKind() TraitKind
	TraitOrigin() Origin
}

func (t LLMTrait) TraitName() string      { return t.Name }
func (t LLMTrait) TraitMechanism() Mechanism { return MechanismLLM }
func (t LLMTrait) TraitKind() TraitKind   { return t.Kind }
func (t LLMTrait) TraitOrigin() Origin    { return t.Origin }

func (t RegexTrait) TraitName() string      { return t.Name }
func (t RegexTrait) TraitMechanism() Mechanism { return MechanismRegex }
func (t RegexTrait) TraitKind() TraitKind   { return t.Kind }
func (t RegexTrait) TraitOrigin() Origin    { return t.Origin }

func (t CallableTrait) TraitName() string      { return t.Name }
func (t CallableTrait) TraitMechanism() Mechanism { return MechanismCallable }
func (t CallableTrait) TraitKind() TraitKind   { return t.Kind }
func (t CallableTrait) TraitOrigin() Origin    { return t.Origin }

func (t MetricTrait) TraitName() string      { return t.Name }
func (t MetricTrait) TraitMechanism() Mechanism { return MechanismMetric }
func (t MetricTrait) TraitKind() TraitKind   { return t.Kind }
func (t MetricTrait) TraitOrigin() Origin    { return t.Origin }

// Rubric holds the ordered trait collections for a benchmark or a question.
type Rubric struct {
	LLMTraits      []LLMTrait      `json:"llm_traits,omitempty" yaml:"llm_traits,omitempty"`
	RegexTraits    []RegexTrait    `json:"regex_traits,omitempty" yaml:"regex_traits,omitempty"`
	CallableTraits []CallableTrait `json:"callable_traits,omitempty" yaml:"callable_traits,omitempty"`
	MetricTraits   []MetricTrait   `json:"metric_traits,omitempty" yaml:"metric_traits,omitempty"`
}

// Traits returns every trait in collection order: llm, regex, callable, metric.
func (r *Rubric) Traits() []Trait {
	if r == nil {
		return nil
	}
	traits := make([]Trait, 0, r.TraitCount())
	for _, t := range r.LLMTraits {
		traits = append(traits, t)
	}
	for _, t := range r.RegexTraits {
		traits = append(traits, t)
	}
	for _, t := range r.CallableTraits {
		traits = append(traits, t)
	}
	for _, t := range r.MetricTraits {
		traits = append(traits, t)
	}
	return traits
}

// TraitCount returns the total number of traits across all collections.
func (r *Rubric) TraitCount() int {
	if r == nil {
		return 0
	}
	return len(r.LLMTraits) + len(r.RegexTraits) + len(r.CallableTraits) + len(r.MetricTraits)
}

// TraitNames returns trait names in collection order.
func (r *Rubric) TraitNames() []string {
	traits := r.Traits()
	names := make([]string, 0, len(traits))
	for _, t := range traits {
		names = append(names, t.TraitName())
	}
	return names
}

// Find returns the trait with the given name, searching all four collections.
func (r *Rubric) Find(name string) (Trait, bool) {
	if r == nil {
		return nil, false
	}
	for _, t := range r.Traits() {
		if t.TraitName() == name {
			return t, true
		}
	}
	return nil, false
}
