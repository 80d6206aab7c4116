package export

import (
	"encoding/json"
	"fmt"
	"strconv"

	"veriq/internal/result"
	"veriq/internal/rubric"
)

// TraitColumn is one fixed CSV column derived from a global rubric trait.
type TraitColumn struct {
	Name      string
	Kind      rubric.TraitKind
	Mechanism rubric.Mechanism
}

// Row holds one result's trait scores partitioned into global columns and the
// aggregated question-specific blob.
type Row struct {
	Global           map[string]any
	QuestionSpecific map[string]any
}

// Consolidation is the column set and partitioned rows for a result set. The
// column set is computed once over the whole set so CSV headers stay stable.
type Consolidation struct {
	Columns             []TraitColumn
	HasQuestionSpecific bool
	Rows                []Row
}

// Consolidate partitions each result's trait scores into the global rubric's
// fixed columns plus a per-row map of question-specific scores. Without a
// global rubric every score lands in the question-specific map; nothing is
// fabricated as global.
func Consolidate(results []result.VerificationResult, global *rubric.Rubric) Consolidation {
	var columns []TraitColumn
	for _, trait := range global.Traits() {
		columns = append(columns, TraitColumn{
			Name:      trait.TraitName(),
			Kind:      trait.TraitKind(),
			Mechanism: trait.TraitMechanism(),
		})
	}

	consolidation := Consolidation{Columns: columns}
	for _, r := range results {
		row := Row{Global: map[string]any{}, QuestionSpecific: map[string]any{}}
		scores := r.Rubric
		var evaluation *rubric.Rubric
		if scores != nil {
			evaluation = scores.EvaluationRubric
		}
		for _, column := range columns {
			if value, ok := scores.Score(column.Name); ok {
				row.Global[column.Name] = value
			}
		}
		for _, name := range scores.TraitNames() {
			if !rubric.IsQuestionSpecific(name, global, evaluation) {
				continue
			}
			if value, ok := scores.Score(name); ok {
				row.QuestionSpecific[name] = value
			}
		}
		if len(row.QuestionSpecific) > 0 {
			consolidation.HasQuestionSpecific = true
		}
		consolidation.Rows = append(consolidation.Rows, row)
	}
	return consolidation
}

// CellValue renders a global trait value for CSV output. Boolean-kind traits
// render 1/0; the conversion follows the trait's declared kind, not the
// runtime type of an individual value.
func (c Consolidation) CellValue(column TraitColumn, row Row) string {
	value, ok := row.Global[column.Name]
	if !ok {
		return ""
	}
	if column.Kind == rubric.KindBoolean {
		if b, isBool := value.(bool); isBool {
			if b {
				return "1"
			}
			return "0"
		}
	}
	return formatScalar(value)
}

// QuestionSpecificJSON renders the row's question-specific scores as a JSON
// object, or empty when the row has none.
func (c Consolidation) QuestionSpecificJSON(row Row) (string, error) {
	if len(row.QuestionSpecific) == 0 {
		return "", nil
	}
	data, err := json.Marshal(row.QuestionSpecific)
	if err != nil {
		return "", fmt.Errorf("marshal question-specific scores: %w", err)
	}
	return string(data), nil
}

func formatScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
