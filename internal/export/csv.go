package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"veriq/internal/result"
	"veriq/internal/rubric"
)

// metadataPlaceholder substitutes for required metadata a malformed row lacks.
// A bad row never aborts the rest of the batch.
const metadataPlaceholder = "N/A"

var metadataHeaders = []string{
	"question_id",
	"template_id",
	"question_text",
	"raw_answer",
	"answering_model",
	"parsing_model",
	"replicate",
	"run_name",
	"job_id",
	"execution_time",
	"timestamp",
	"completed_without_errors",
	"error",
}

var templateHeaders = []string{
	"raw_response",
	"verify_result",
	"has_granular_result",
	"embedding_score",
	"embedding_override_applied",
	"embedding_model",
	"abstention_detected",
	"abstention_override_applied",
	"abstention_reasoning",
	"sufficiency_detected",
}

// WriteCSV renders results as a comma-delimited table with a \n row
// separator. Headers are the union of metadata fields, template fields, and
// the consolidated rubric column set. Fields containing commas, quotes, or
// newlines are quoted with internal quotes doubled; absent values serialize
// to the empty string.
func WriteCSV(w io.Writer, results []result.VerificationResult, global *rubric.Rubric) error {
	consolidation := Consolidate(results, global)

	header := append([]string{"row_index"}, metadataHeaders...)
	header = append(header, templateHeaders...)
	for _, column := range consolidation.Columns {
		header = append(header, "rubric_"+column.Name)
	}
	if consolidation.HasQuestionSpecific {
		header = append(header, "question_specific_rubrics")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range results {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(i+1))
		record = append(record, metadataCells(r)...)
		record = append(record, templateCells(r)...)
		row := consolidation.Rows[i]
		for _, column := range consolidation.Columns {
			record = append(record, consolidation.CellValue(column, row))
		}
		if consolidation.HasQuestionSpecific {
			cell, err := consolidation.QuestionSpecificJSON(row)
			if err != nil {
				return err
			}
			record = append(record, cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func metadataCells(r result.VerificationResult) []string {
	m := r.Metadata
	if m == nil {
		cells := make([]string, len(metadataHeaders))
		cells[0] = metadataPlaceholder
		return cells
	}
	questionID := m.QuestionID
	if questionID == "" {
		questionID = metadataPlaceholder
	}
	completed := ""
	if r.Abstained() {
		// Abstention with override applied supersedes the completion flag.
		completed = "abstained"
	} else if m.CompletedWithoutErrors != nil {
		completed = strconv.FormatBool(*m.CompletedWithoutErrors)
	}
	return []string{
		questionID,
		m.TemplateID,
		m.QuestionText,
		m.RawAnswer,
		m.AnsweringModel,
		m.ParsingModel,
		formatInt(m.Replicate),
		m.RunName,
		m.JobID,
		formatFloat(m.ExecutionSeconds),
		m.Timestamp,
		completed,
		m.Error,
	}
}

func templateCells(r result.VerificationResult) []string {
	t := r.Template
	if t == nil {
		return make([]string, len(templateHeaders))
	}
	verify := ""
	if t.VerifyResult != nil {
		verify = strconv.FormatBool(*t.VerifyResult)
	}
	var embeddingScore, embeddingOverride, embeddingModel string
	if t.EmbeddingCheck != nil {
		embeddingScore = strconv.FormatFloat(t.EmbeddingCheck.Score, 'f', -1, 64)
		embeddingOverride = strconv.FormatBool(t.EmbeddingCheck.OverrideApplied)
		embeddingModel = t.EmbeddingCheck.Model
	}
	var abstained, abstentionOverride, abstentionReasoning string
	if t.Abstention != nil {
		abstained = strconv.FormatBool(t.Abstention.Detected)
		abstentionOverride = strconv.FormatBool(t.Abstention.OverrideApplied)
		abstentionReasoning = t.Abstention.Reasoning
	}
	sufficiency := ""
	if t.Sufficiency != nil {
		sufficiency = strconv.FormatBool(t.Sufficiency.Detected)
	}
	return []string{
		t.RawResponse,
		verify,
		strconv.FormatBool(len(t.VerifyGranularResult) > 0),
		embeddingScore,
		embeddingOverride,
		embeddingModel,
		abstained,
		abstentionOverride,
		abstentionReasoning,
		sufficiency,
	}
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
