package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"veriq/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		dbFlag := fs.String("db", "", "Results database (default: from config)")
		configFlag := fs.String("config", "", "Path to config file (default: search for .veriq/config.yml)")
		output := fs.String("output", "report.html", "Report output path, or - for stdout")
		filters := &filterFlags{}
		filters.register(fs)
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if code, ok := rejectExtraArgs(cmd, fs, stderr); !ok {
			return code
		}

		dbPath, err := resolveDBPath(*dbFlag, *configFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		results, err := loadFiltered(context.Background(), dbPath, filters)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		html, err := report.RenderHTML(context.Background(), results)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}

		if *output == "-" {
			fmt.Fprint(stdout, html)
			return ExitOK
		}
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", *output)
		return ExitOK
	}
}
