// Package tokenstore persists the admin session token in the local metadata
// table so a restarted CLI can resume the session.
package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mcadmin/internal/dbx"
	"github.com/dmitrijs2005/mcadmin/internal/logging"
)

const (
	keyToken   = "token"
	keySavedAt = "token_saved_at"
)

// TokenSource is the part of api.API the store subscribes to.
type TokenSource interface {
	OnTokenChange(fn func(token string)) (unsubscribe func())
}

type Store struct {
	db  *sql.DB
	now func() time.Time
	log logging.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now, log: logging.Nop()}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "tokenstore")
	return s
}

// Load returns the persisted token, or "" when there is none.
func (s *Store) Load(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyToken)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return string(v), nil
}

// SavedAt returns when the current token was persisted.
func (s *Store) SavedAt(ctx context.Context) (time.Time, bool, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keySavedAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("load token timestamp: %w", err)
	}
	if v == nil {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339Nano, string(v))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse token timestamp: %w", err)
	}
	return t, true, nil
}

// Save stores token and its timestamp in one transaction. An empty token
// is the same as Clear.
func (s *Store) Save(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keySavedAt, []byte(s.now().UTC().Format(time.RFC3339Nano)))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, keyToken, keySavedAt)
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Observer returns a token-change callback that mirrors every change into
// the store. Write failures are logged; the session is not affected.
func (s *Store) Observer() func(token string) {
	return func(token string) {
		ctx := context.Background()
		if err := s.Save(ctx, token); err != nil {
			s.log.Error(ctx, "persist token", "err", err)
			return
		}
		s.log.Debug(ctx, "token persisted", "present", token != "")
	}
}

// Attach subscribes the store to src. The returned func detaches it.
func (s *Store) Attach(src TokenSource) (detach func()) {
	return src.OnTokenChange(s.Observer())
}
