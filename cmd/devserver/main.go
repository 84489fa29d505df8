// Command devserver runs the in-memory admin API on a local port, for
// trying the CLI without a game server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/adminfake"
	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/logging"
	"github.com/google/uuid"
)

type options struct {
	addr     string
	user     string
	password string
	style    string
	tokenTTL time.Duration
	level    string
	seed     bool
}

func parseFlags(args []string) (options, error) {
	o := options{}
	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.StringVar(&o.addr, "a", "127.0.0.1:8080", "listen address")
	fs.StringVar(&o.user, "u", "admin", "admin username")
	fs.StringVar(&o.password, "p", "admin", "admin password")
	fs.StringVar(&o.style, "s", string(adminfake.StyleRaw), "error body style (raw, wrapped)")
	fs.DurationVar(&o.tokenTTL, "t", adminfake.DefaultTokenTTL, "session token lifetime")
	fs.StringVar(&o.level, "l", "info", "log level")
	fs.BoolVar(&o.seed, "seed", false, "start with sample players and connections")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	switch adminfake.Style(o.style) {
	case adminfake.StyleRaw, adminfake.StyleWrapped:
	default:
		return o, fmt.Errorf("unknown style %q", o.style)
	}
	return o, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: o.level, Format: logging.FormatJSON, Output: os.Stdout})
	if err != nil {
		return err
	}

	srv := adminfake.New(
		adminfake.WithUser(o.user, o.password),
		adminfake.WithStyle(adminfake.Style(o.style)),
		adminfake.WithTokenTTL(o.tokenTTL),
		adminfake.WithLogger(logger),
	)
	if o.seed {
		seed(srv)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	hs := &http.Server{Addr: o.addr, Handler: srv, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "admin api listening", "addr", o.addr, "style", o.style)
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

func seed(srv *adminfake.Server) {
	alice := models.PlayerInfo{Name: "Alice", ID: uuid.NewString()}
	offline := uuid.Nil.String()

	srv.AddPlayer("whitelist", alice)
	srv.AddPlayer("whitelist", models.PlayerInfo{Name: "Bob", ID: offline})
	srv.AddPlayer("blacklist", models.PlayerInfo{Name: "Griefer", ID: offline})
	srv.Connect("192.168.1.20:51234", time.Now().Add(-15*time.Minute), &alice)
	srv.Connect("192.168.1.33:40112", time.Now().Add(-time.Minute), nil)
}
