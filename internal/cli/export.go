package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"veriq/internal/checkpoint"
	"veriq/internal/export"
	"veriq/internal/rubric"
)

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		dbFlag := fs.String("db", "", "Results database (default: from config)")
		configFlag := fs.String("config", "", "Path to config file (default: search for .veriq/config.yml)")
		format := fs.String("format", "json", "Export format: json or csv")
		output := fs.String("output", "", "Output directory (default: current directory)")
		checkpointPath := fs.String("checkpoint", "", "Checkpoint supplying the global rubric")
		filters := &filterFlags{}
		filters.register(fs)
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if code, ok := rejectExtraArgs(cmd, fs, stderr); !ok {
			return code
		}

		exportFormat := export.Format(*format)
		if exportFormat != export.FormatJSON && exportFormat != export.FormatCSV {
			fmt.Fprintf(stderr, "--format must be json or csv: %q\n", *format)
			return ExitUsage
		}

		var global *rubric.Rubric
		if *checkpointPath != "" {
			unified, _, err := checkpoint.Load(*checkpointPath)
			if err != nil {
				fmt.Fprintf(stderr, "Export failed: %v\n", err)
				return ExitError
			}
			global = unified.GlobalRubric
		}

		dbPath, err := resolveDBPath(*dbFlag, *configFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		results, err := loadFiltered(context.Background(), dbPath, filters)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}

		opts := export.Options{
			GlobalRubric:      global,
			FilterDescription: filters.describe(),
			Now:               nowFunc(),
		}
		file, err := export.ExportFilteredResults(results, exportFormat, opts, func(msg string) {
			fmt.Fprintln(stderr, msg)
		})
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		if file == nil {
			return ExitError
		}

		outPath := filepath.Join(*output, file.Name)
		if *output != "" {
			if err := os.MkdirAll(*output, 0o755); err != nil {
				fmt.Fprintf(stderr, "Export failed: %v\n", err)
				return ExitError
			}
		}
		if err := os.WriteFile(outPath, file.Data, 0o644); err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Exported %d results to %s\n", len(results), outPath)
		return ExitOK
	}
}
