package report

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"veriq/internal/filter"
	"veriq/internal/result"
)

// ReportPage renders the verification report as a standalone HTML page.
func ReportPage(summary Summary, results []result.VerificationResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Verification Report</title>
  </head>
  <body>
    <h1>Verification Report</h1>
    <p>%d results, %d passed, %d failed, %d not applicable, %d abstained. Pass rate %s%%.</p>
    <table border="1" cellpadding="4" cellspacing="0">
      <thead>
        <tr><th>#</th><th>Question</th><th>Job</th><th>Model</th><th>Timestamp</th><th>Outcome</th></tr>
      </thead>
      <tbody>
`,
			summary.Total, summary.Passed, summary.Failed, summary.NotApplicable,
			summary.Abstained, formatPassRate(summary.PassRate()),
		); err != nil {
			return err
		}
		for i, r := range results {
			if err := writeRow(w, i+1, r); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `      </tbody>
    </table>
  </body>
</html>
`)
		return err
	})
}

func writeRow(w io.Writer, index int, r result.VerificationResult) error {
	var model string
	if r.Metadata != nil {
		model = r.Metadata.AnsweringModel
	}
	outcome := string(filter.OutcomeOf(r))
	if r.Abstained() {
		outcome = "abstained"
	}
	_, err := fmt.Fprintf(w, "        <tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
		index,
		templ.EscapeString(r.QuestionID()),
		templ.EscapeString(r.JobID()),
		templ.EscapeString(model),
		templ.EscapeString(r.Timestamp()),
		templ.EscapeString(outcome),
	)
	return err
}
