package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"veriq/internal/result"
	"veriq/internal/store"
)

// runList builds the handler for the list command.
func runList(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		dbFlag := fs.String("db", "", "Results database (default: from config)")
		configFlag := fs.String("config", "", "Path to config file (default: search for .veriq/config.yml)")
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
			fmt.Fprintf(stderr, "List failed: %v\n", err)
			return ExitError
		}
		summaries, err := listSummaries(context.Background(), dbPath, filters)
		if err != nil {
			fmt.Fprintf(stderr, "List failed: %v\n", err)
			return ExitError
		}
		if len(summaries) == 0 {
			fmt.Fprintln(stdout, "No results stored.")
			return ExitOK
		}
		renderSummaryTable(stdout, summaries)
		fmt.Fprintf(stdout, "%d results\n", len(summaries))
		return ExitOK
	}
}

// listSummaries picks the cheap metadata query when no filters are set;
// otherwise it loads and filters full results and summarizes them in memory.
func listSummaries(ctx context.Context, dbPath string, filters *filterFlags) ([]store.Summary, error) {
	if filters.describe() == "none" {
		db, err := store.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return store.ListSummaries(ctx, db)
	}
	results, err := loadFiltered(ctx, dbPath, filters)
	if err != nil {
		return nil, err
	}
	summaries := make([]store.Summary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, summaryOf(r))
	}
	return summaries, nil
}

func summaryOf(r result.VerificationResult) store.Summary {
	var s store.Summary
	if r.Metadata == nil {
		return s
	}
	s.QuestionID = r.Metadata.QuestionID
	s.JobID = r.Metadata.JobID
	s.Timestamp = r.Metadata.Timestamp
	s.AnsweringModel = r.Metadata.AnsweringModel
	s.RunName = r.Metadata.RunName
	s.Completed = r.Metadata.CompletedWithoutErrors
	return s
}

// renderSummaryTable prints listing rows in a markdown-style table.
func renderSummaryTable(w io.Writer, summaries []store.Summary) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithHeader([]string{"#", "Question", "Job", "Timestamp", "Model", "Run", "Completed"}),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Top: tw.Off, Right: tw.On, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
	for i, s := range summaries {
		completed := ""
		if s.Completed != nil {
			completed = strconv.FormatBool(*s.Completed)
		}
		_ = table.Append([]string{
			strconv.Itoa(i + 1),
			s.QuestionID,
			s.JobID,
			s.Timestamp,
			s.AnsweringModel,
			s.RunName,
			completed,
		})
	}
	_ = table.Render()
}
