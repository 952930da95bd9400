// Package server initializes and runs the vault application: local storage,
// vault store, services, and the HTTP shell boundary, with signal-driven
// shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/igwenababa1/scbvault/internal/config"
	"github.com/igwenababa1/scbvault/internal/logging"
	httpserver "github.com/igwenababa1/scbvault/internal/server/http"
	"github.com/igwenababa1/scbvault/internal/services"
	"github.com/igwenababa1/scbvault/internal/session"
	"github.com/igwenababa1/scbvault/internal/storage"
	"github.com/igwenababa1/scbvault/internal/vault"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	auth   *services.AuthService
	shell  *session.Manager
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

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
	authService := services.NewAuthService(store, kv, logger, authOpts...)

	var shellOpts []session.Option
	if cfg.DiscardEndsSession {
		shellOpts = append(shellOpts, session.WithSessionTermination(authService.Logout))
	}
	shell := session.NewManager(kv, logger, shellOpts...)

	return &App{config: cfg, logger: logger, db: db, auth: authService, shell: shell}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.HTTPAddr)
	app.initSignalHandler(cancelFunc)

	h := httpserver.NewHandler(app.auth, app.shell, app.logger,
		[]byte(app.config.SecretKey), app.config.AccessTokenValidityDuration)
	mw := httpserver.NewMiddleware([]byte(app.config.SecretKey))
	srv := httpserver.NewServer(app.config.HTTPAddr, h, mw, app.logger)

	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "app stopped")
}
