// Package cli implements an interactive terminal shell over the local
// vault: login, registration, profile editing, and session restore,
// driven by a simple REPL.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/igwenababa1/scbvault/internal/config"
	"github.com/igwenababa1/scbvault/internal/logging"
	"github.com/igwenababa1/scbvault/internal/services"
	"github.com/igwenababa1/scbvault/internal/session"
	"github.com/igwenababa1/scbvault/internal/storage"
	"github.com/igwenababa1/scbvault/internal/vault"
)

type App struct {
	config *config.Config
	auth   *services.AuthService
	shell  *session.Manager
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	close  func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr)

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	kv := storage.NewSQLiteRepository(db)

	store := vault.NewStore(kv, vault.NewCodec([]byte(cfg.VaultPassphrase)), logger)
	if err := store.Load(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("vault load error: %w", err)
	}

	var authOpts []services.AuthOption
	if cfg.SimulatedLatency > 0 {
		authOpts = append(authOpts, services.WithLatency(cfg.SimulatedLatency))
	}
	if cfg.SingleUserFallback {
		authOpts = append(authOpts, services.WithSingleUserFallback())
	}
	auth := services.NewAuthService(store, kv, logger, authOpts...)

	var shellOpts []session.Option
	if cfg.DiscardEndsSession {
		shellOpts = append(shellOpts, session.WithSessionTermination(auth.Logout))
	}
	shell := session.NewManager(kv, logger, shellOpts...)

	return &App{
		config: cfg,
		auth:   auth,
		shell:  shell,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		close:  db.Close,
	}, nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	user, err := a.auth.CurrentUser(ctx)
	return err == nil && user != nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.close(); err != nil {
			a.logger.Error(ctx, "closing database", "error", err)
		}
	}()
	a.Root(ctx)
}
