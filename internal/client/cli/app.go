// Package cli is the thin presentation collaborator over the client core:
// it reads derived state from the session manager and feed store and invokes
// their operations. No domain logic lives here.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/momento-app/momento/internal/client/api"
	"github.com/momento-app/momento/internal/client/config"
	"github.com/momento-app/momento/internal/client/feed"
	"github.com/momento-app/momento/internal/client/mirror"
	"github.com/momento-app/momento/internal/client/session"
	"github.com/momento-app/momento/internal/logging"
)

type App struct {
	config  *config.Config
	api     api.Client
	session *session.Manager
	feed    *feed.Store
	log     logging.Logger

	db     *sql.DB
	reader *bufio.Reader
}

// NewApp wires the mirror database, the HTTP API client, and the two core
// stores together.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	repo, db, err := mirror.InitDatabase(ctx, c.MirrorPath)
	if err != nil {
		return nil, fmt.Errorf("init mirror database: %w", err)
	}

	apiClient, err := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	return &App{
		config:  c,
		api:     apiClient,
		session: session.NewManager(apiClient, repo, log),
		feed:    feed.NewStore(apiClient, repo, log),
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == session.StatusAuthenticated
}

// status renders the prompt fragment: the user's email when logged in,
// "guest" otherwise.
func (a *App) status() string {
	if u, ok := a.session.User(); ok {
		return "(" + u.Email + ") "
	}
	return "(guest) "
}

// Run bootstraps the session, hydrates the feed (mirror first, then the
// server when authenticated), and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Bootstrap(ctx)

	if err := a.feed.Load(ctx); err != nil {
		a.log.Warn(ctx, "could not load mirrored feed", "error", err)
	}
	if a.isLoggedIn() {
		if err := a.feed.Refresh(ctx); err != nil {
			a.log.Warn(ctx, "could not refresh feed from server", "error", err)
		}
	}

	printlnFn("Welcome to Momento (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// Close releases the API client and the mirror database.
func (a *App) Close() {
	if err := a.api.Close(); err != nil {
		a.log.Warn(context.Background(), "closing api client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing mirror database", "error", err)
	}
}
