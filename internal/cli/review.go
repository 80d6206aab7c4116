package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"veriq/internal/result"
	"veriq/internal/ui/review"
)

// runProgram is a test seam for launching the Bubble Tea program.
var runProgram = func(model tea.Model, stdout io.Writer) error {
	program := tea.NewProgram(model, tea.WithOutput(stdout))
	_, err := program.Run()
	return err
}

// runReview builds the handler for the review command.
func runReview(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		dbFlag := fs.String("db", "", "Results database (default: from config)")
		configFlag := fs.String("config", "", "Path to config file (default: search for .veriq/config.yml)")
		uiMode := fs.String("ui", "auto", "UI mode: auto, live, or plain")
		noColor := fs.Bool("no-color", false, "Disable colors in the interactive UI")
		filters := &filterFlags{}
		filters.register(fs)
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if code, ok := rejectExtraArgs(cmd, fs, stderr); !ok {
			return code
		}

		decision, err := resolveUIMode(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		dbPath, err := resolveDBPath(*dbFlag, *configFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Review failed: %v\n", err)
			return ExitError
		}
		results, err := loadFiltered(context.Background(), dbPath, filters)
		if err != nil {
			fmt.Fprintf(stderr, "Review failed: %v\n", err)
			return ExitError
		}

		if !decision.useLive {
			printPlainReview(stdout, results)
			return ExitOK
		}
		model := review.NewModel(results, review.Options{NoColor: *noColor})
		if err := runProgram(model, stdout); err != nil {
			fmt.Fprintf(stderr, "Review failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// printPlainReview lists results one per line for non-TTY output.
func printPlainReview(stdout io.Writer, results []result.VerificationResult) {
	for _, r := range results {
		var model string
		if r.Metadata != nil {
			model = r.Metadata.AnsweringModel
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\n", r.QuestionID(), r.JobID(), model, r.Timestamp())
	}
	fmt.Fprintf(stdout, "%d results\n", len(results))
}
