package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"veriq/internal/result"
	"veriq/internal/store"
)

// nowFunc is a test seam for the ingestion clock.
var nowFunc = time.Now

// runImport builds the handler for the import command.
func runImport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		dbFlag := fs.String("db", "", "Results database (default: from config)")
		configFlag := fs.String("config", "", "Path to config file (default: search for .veriq/config.yml)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "Missing <results.json>")
			return ExitUsage
		}

		dbPath, err := resolveDBPath(*dbFlag, *configFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Import failed: %v\n", err)
			return ExitError
		}
		db, err := store.Open(dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Import failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		ctx := context.Background()
		var total store.Stats
		for _, path := range fs.Args() {
			batch, err := result.LoadBatch(path)
			if err != nil {
				fmt.Fprintf(stderr, "Import failed: %s: %v\n", path, err)
				return ExitError
			}
			stats, err := store.Ingest(ctx, db, batch, nowFunc())
			if err != nil {
				fmt.Fprintf(stderr, "Import failed: %s: %v\n", path, err)
				return ExitError
			}
			fmt.Fprintf(stdout, "%s: %d imported, %d duplicates skipped\n", path, stats.Inserted, stats.Duplicates)
			total.Inserted += stats.Inserted
			total.Duplicates += stats.Duplicates
		}
		if fs.NArg() > 1 {
			fmt.Fprintf(stdout, "Total: %d imported, %d duplicates skipped\n", total.Inserted, total.Duplicates)
		}
		return ExitOK
	}
}
