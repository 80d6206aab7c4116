package cli

import (
	"context"

	"veriq/internal/filter"
	"veriq/internal/result"
	"veriq/internal/store"
)

// loadFiltered opens the results store and applies the shared filter flags.
func loadFiltered(ctx context.Context, dbPath string, flags *filterFlags) ([]result.VerificationResult, error) {
	predicates, err := flags.predicates()
	if err != nil {
		return nil, err
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	results, err := store.LoadResults(ctx, db)
	if err != nil {
		return nil, err
	}
	return filter.Apply(results, predicates)
}
