package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/client/api"
	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/client/config"
	"github.com/dmitrijs2005/mcadmin/internal/client/storage"
	"github.com/dmitrijs2005/mcadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/mcadmin/internal/logging"
)

type App struct {
	api           api.API
	log           logging.Logger
	reader        *bufio.Reader
	out           io.Writer
	verifyTimeout time.Duration
	username      string
	closeFn       func() error
}

// NewApp wires the admin API client to the local token store. A token left
// by a previous run is restored and verified in the background.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	style, err := apierr.ParseStyle(cfg.ErrorStyle)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	store := tokenstore.New(db, tokenstore.WithLogger(log))
	token, err := store.Load(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	client := api.NewV1(cfg.ServerURL,
		api.WithErrorStyle(style),
		api.WithLogger(log),
		api.WithRestoredToken(token),
		api.WithTokenObserver(store.Observer()),
	)

	a := newApp(client, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.verifyTimeout = cfg.VerifyTimeout
	a.closeFn = db.Close
	return a, nil
}

func newApp(client api.API, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		api:           client,
		log:           log,
		reader:        reader,
		out:           out,
		verifyTimeout: 10 * time.Second,
		closeFn:       func() error { return nil },
	}
}

// Close waits for restore verification before releasing the local database,
// since a late verdict still persists through the token observer.
func (a *App) Close() error {
	<-a.api.Settled()
	return a.closeFn()
}

func (a *App) isLoggedIn() bool {
	return a.api.Logged()
}

func (a *App) getStatus() string {
	switch {
	case !a.isLoggedIn():
		return "(anonymous)"
	case a.username != "":
		return "(" + a.username + ")"
	default:
		return "(restored session)"
	}
}

// awaitSession waits for restore verification so the first prompt shows the
// real session state.
func (a *App) awaitSession(ctx context.Context) {
	timer := time.NewTimer(a.verifyTimeout)
	defer timer.Stop()

	select {
	case <-a.api.Settled():
		if a.isLoggedIn() {
			fmt.Fprintln(a.out, "Resumed previous session.")
		}
	case <-timer.C:
		a.log.Warn(ctx, "session verification is taking long, continuing")
	case <-ctx.Done():
	}
}

// Root runs the REPL until exit or end of input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "mcadmin (type 'help' for commands)")
	a.awaitSession(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}
