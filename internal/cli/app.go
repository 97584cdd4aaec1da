// Package cli implements the interactive front end: a small REPL that drives
// the auth core. It renders no chrome and validates no fields; it only calls
// into the core and prints what comes back.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/akazarov/authgate/internal/auth"
	"github.com/akazarov/authgate/internal/config"
	"github.com/akazarov/authgate/internal/credentials"
	"github.com/akazarov/authgate/internal/directory"
	"github.com/akazarov/authgate/internal/kvstore"
	"github.com/akazarov/authgate/internal/logging"
	"github.com/akazarov/authgate/internal/session"
)

type App struct {
	config   *config.Config
	store    kvstore.Store
	auth     *auth.Service
	sessions *session.Manager
	logger   logging.Logger
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, err := kvstore.Open(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing store", "error", err)
		return nil, err
	}

	dir := directory.NewKVDirectory(store)
	creds := credentials.NewStore(store, credentials.BcryptHasher{})
	svc := auth.NewService(dir, creds, c)
	sessions := session.NewManager(svc, store, logger)

	return &App{
		config:   c,
		store:    store,
		auth:     svc,
		sessions: sessions,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	unsubscribe := a.sessions.Subscribe(func(s session.State) {
		a.logger.Debug(ctx, "session state changed",
			"authenticated", s.IsAuthenticated, "loading", s.IsLoading)
	})
	defer unsubscribe()

	a.sessions.Init(ctx)
	if state := a.sessions.Current(); state.IsAuthenticated {
		printlnFn("Welcome back,", state.User.Name)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().IsAuthenticated
}

func (a *App) status() string {
	state := a.sessions.Current()
	switch {
	case state.IsLoading:
		return "..."
	case state.IsAuthenticated:
		return state.User.Email
	default:
		return "anonymous"
	}
}
