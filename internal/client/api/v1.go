package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/client/resources"
	"github.com/dmitrijs2005/mcadmin/internal/client/session"
	"github.com/dmitrijs2005/mcadmin/internal/client/transport"
	"github.com/dmitrijs2005/mcadmin/internal/logging"
)

var _ API = (*V1)(nil)

// V1 talks to the /api/v1 admin endpoints.
type V1 struct {
	session *session.Manager
	etags   *resources.ETagStore

	config    *resources.ConfigClient
	whitelist *resources.PlayerListClient
	blacklist *resources.PlayerListClient
	conns     *resources.ConnectionsClient
}

type options struct {
	style      apierr.Style
	httpClient *http.Client
	log        logging.Logger
	restored   string
	observers  []func(string)
}

type Option func(*options)

func WithErrorStyle(st apierr.Style) Option {
	return func(o *options) { o.style = st }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRestoredToken resumes a persisted session, see session.WithRestoredToken.
func WithRestoredToken(token string) Option {
	return func(o *options) { o.restored = token }
}

// WithTokenObserver subscribes fn before restore verification starts.
func WithTokenObserver(fn func(token string)) Option {
	return func(o *options) { o.observers = append(o.observers, fn) }
}

func NewV1(baseURL string, opts ...Option) *V1 {
	o := options{style: apierr.StyleAuto, log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	var trOpts []transport.Option
	if o.httpClient != nil {
		trOpts = append(trOpts, transport.WithHTTPClient(o.httpClient))
	}
	tr := transport.New(baseURL, trOpts...)
	cls := apierr.NewClassifier(o.style)

	smOpts := []session.Option{session.WithLogger(o.log)}
	for _, fn := range o.observers {
		smOpts = append(smOpts, session.WithTokenObserver(fn))
	}
	if o.restored != "" {
		smOpts = append(smOpts, session.WithRestoredToken(o.restored))
	}

	etags := resources.NewETagStore()
	rc := resources.NewClient(tr, cls, etags)

	return &V1{
		session:   session.NewManager(tr, cls, smOpts...),
		etags:     etags,
		config:    resources.NewConfigClient(rc),
		whitelist: resources.NewWhitelistClient(rc),
		blacklist: resources.NewBlacklistClient(rc),
		conns:     resources.NewConnectionsClient(rc),
	}
}

func (a *V1) Logged() bool { return a.session.Logged() }

func (a *V1) AuthToken() string { return a.session.Token() }

func (a *V1) OnTokenChange(fn func(token string)) func() { return a.session.OnTokenChange(fn) }

func (a *V1) Settled() <-chan struct{} { return a.session.Settled() }

func (a *V1) Verify(ctx context.Context) (bool, error) { return a.session.Verify(ctx) }

func (a *V1) Login(ctx context.Context, username, password string) error {
	return a.session.Login(ctx, username, password)
}

// Logout ends the session and forgets every cached ETag, so the next session
// starts from fresh snapshots.
func (a *V1) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	a.etags.Reset()
}

func (a *V1) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return a.session.ChangePassword(ctx, oldPassword, newPassword)
}

func (a *V1) GetConfig(ctx context.Context) (models.Config, error) { return a.config.Get(ctx) }

func (a *V1) SetConfig(ctx context.Context, key models.ConfigKey, value bool) error {
	return a.config.Set(ctx, key, value)
}

/*************
 * Whitelist
 *************/

func (a *V1) GetWhitelist(ctx context.Context) (models.Whitelist, error) {
	return a.whitelist.Get(ctx)
}

func (a *V1) AddWhitelistPlayer(ctx context.Context, player string) error {
	return a.whitelist.AddPlayer(ctx, player)
}

func (a *V1) RemoveWhitelistPlayer(ctx context.Context, index int) error {
	return a.whitelist.RemovePlayer(ctx, index)
}

func (a *V1) AddWhitelistIP(ctx context.Context, ip string) error {
	return a.whitelist.AddIP(ctx, ip)
}

func (a *V1) RemoveWhitelistIP(ctx context.Context, index int) error {
	return a.whitelist.RemoveIP(ctx, index)
}

/*************
 * Blacklist
 *************/

func (a *V1) GetBlacklist(ctx context.Context) (models.Blacklist, error) {
	return a.blacklist.Get(ctx)
}

func (a *V1) AddBlacklistPlayer(ctx context.Context, player string) error {
	return a.blacklist.AddPlayer(ctx, player)
}

func (a *V1) RemoveBlacklistPlayer(ctx context.Context, index int) error {
	return a.blacklist.RemovePlayer(ctx, index)
}

func (a *V1) AddBlacklistIP(ctx context.Context, ip string) error {
	return a.blacklist.AddIP(ctx, ip)
}

func (a *V1) RemoveBlacklistIP(ctx context.Context, index int) error {
	return a.blacklist.RemoveIP(ctx, index)
}

func (a *V1) GetConnections(ctx context.Context) ([]models.Connection, error) {
	return a.conns.List(ctx)
}
