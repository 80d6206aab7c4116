package config

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// scaffoldConfig emits the starter YAML with the package defaults filled in.
func scaffoldConfig() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `results_db: %q
checkpoint: ""
export_dir: %q
serve:
  addr: %q
`, DefaultResultsDB, DefaultExportDir, DefaultServeAddr)
		return err
	})
}

// renderScaffoldConfig builds the scaffold YAML via the compiled template.
func renderScaffoldConfig() (string, error) {
	var builder strings.Builder
	if err := scaffoldConfig().Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
