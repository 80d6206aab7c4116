package report

import (
	"context"
	"strings"

	"veriq/internal/result"
)

// RenderHTML renders the report page into a string.
func RenderHTML(ctx context.Context, results []result.VerificationResult) (string, error) {
	var builder strings.Builder
	if err := ReportPage(Summarize(results), results).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
