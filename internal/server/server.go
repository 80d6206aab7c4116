package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"veriq/internal/store"
)

// Config captures the settings for serving curated results.
type Config struct {
	Addr   string
	DBPath string
}

// Serve starts an HTTP server hosting the report page, the results API, and
// the export endpoints. It shuts down gracefully when ctx is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("server: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("server: addr is required")
	}
	if cfg.DBPath == "" {
		return errors.New("server: db path is required")
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewHandler(db),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
