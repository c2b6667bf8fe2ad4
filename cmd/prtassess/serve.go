package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/prtassess/internal/config"
	"github.com/dshills/prtassess/internal/logging"
	"github.com/dshills/prtassess/internal/questions"
	"github.com/dshills/prtassess/internal/record"
	"github.com/dshills/prtassess/internal/session"
	"github.com/dshills/prtassess/internal/web"
)

const (
	sessionMaxAge   = 24 * time.Hour
	shutdownTimeout = 5 * time.Second
)

type serveFlags struct {
	addr       string
	resultsDir string
	sessionDB  string
	questions  string
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the questionnaire over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return exitError(3, "failed to load config: %v", err)
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = f.addr
			}
			if flags.Changed("results-dir") {
				cfg.ResultsDir = f.resultsDir
			}
			if flags.Changed("session-db") {
				cfg.SessionDB = f.sessionDB
			}
			logger := logging.New(os.Stderr, cfg.LogLevel, logging.JSON)
			return runServe(cmd.Context(), cfg, f.questions, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.addr, "addr", config.DefaultAddr, "Listen address (env PRT_ADDR)")
	flags.StringVar(&f.resultsDir, "results-dir", config.DefaultResultsDir, "Directory for JSON records (env PRT_RESULTS_DIR)")
	flags.StringVar(&f.sessionDB, "session-db", "", "SQLite session database; empty keeps sessions in memory (env PRT_SESSION_DB)")
	flags.StringVar(&f.questions, "questions", questions.Web, "Built-in question set")

	return cmd
}

// openSessions returns the session store cfg asks for. SQLite sessions older
// than sessionMaxAge are pruned on open.
func openSessions(ctx context.Context, cfg *config.Config, logger *slog.Logger) (session.Store, error) {
	if cfg.SessionDB == "" {
		return session.NewMemoryStore(), nil
	}
	store, err := session.OpenSQLite(cfg.SessionDB)
	if err != nil {
		return nil, err
	}
	n, err := store.Prune(ctx, time.Now().Add(-sessionMaxAge))
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("session store opened", "path", cfg.SessionDB, "pruned", n)
	return store, nil
}

func newHandler(ctx context.Context, cfg *config.Config, setName string, logger *slog.Logger) (http.Handler, func() error, error) {
	set, err := questions.LoadBuiltin(setName)
	if err != nil {
		return nil, nil, exitError(3, "failed to load questions: %v", err)
	}
	store, err := openSessions(ctx, cfg, logger)
	if err != nil {
		return nil, nil, exitError(3, "failed to open session store: %v", err)
	}
	srv, err := web.New(web.Config{
		Set:        set,
		Recorder:   record.NewRecorder(cfg.ResultsDir),
		Sessions:   store,
		Logger:     logger,
		CookieName: cfg.CookieName,
	})
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to build server: %w", err)
	}
	return srv.Handler(), store.Close, nil
}

func runServe(ctx context.Context, cfg *config.Config, setName string, logger *slog.Logger) error {
	handler, closeStore, err := newHandler(ctx, cfg, setName, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return exitError(3, "failed to listen on %s: %v", cfg.Addr, err)
	}

	httpSrv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()
	logger.Info("listening", "addr", ln.Addr().String(), "results_dir", cfg.ResultsDir)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
