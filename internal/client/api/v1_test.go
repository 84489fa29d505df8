package api

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/adminfake"
	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/client/transport"
	"github.com/dmitrijs2005/mcadmin/internal/common"
	"github.com/stretchr/testify/require"
)

type tokenLog struct {
	mu     sync.Mutex
	tokens []string
}

func (l *tokenLog) record(tok string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = append(l.tokens, tok)
}

func (l *tokenLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.tokens...)
}

func startServer(t *testing.T, opts ...adminfake.Option) (*adminfake.Server, string) {
	t.Helper()
	srv := adminfake.New(append([]adminfake.Option{adminfake.WithUser("admin", "secret")}, opts...)...)
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)
	return srv, hs.URL
}

func waitSettled(t *testing.T, a API) {
	t.Helper()
	select {
	case <-a.Settled():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not settle")
	}
}

/*************
 * Session
 *************/

func TestLoginLogout(t *testing.T) {
	_, url := startServer(t)
	var log tokenLog
	a := NewV1(url, WithTokenObserver(log.record))
	ctx := context.Background()
	waitSettled(t, a)

	require.False(t, a.Logged())
	ok, err := a.Verify(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, a.Login(ctx, "admin", "secret"))
	require.True(t, a.Logged())
	tok := a.AuthToken()
	require.NotEmpty(t, tok)

	ok, err = a.Verify(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	a.Logout(ctx)
	require.False(t, a.Logged())
	require.Empty(t, a.AuthToken())
	require.Equal(t, []string{tok, ""}, log.all())

	// the server revoked the old token
	b := NewV1(url, WithRestoredToken(tok))
	waitSettled(t, b)
	require.False(t, b.Logged())
}

func TestLogin_WrongPassword(t *testing.T) {
	_, url := startServer(t)
	a := NewV1(url)

	err := a.Login(context.Background(), "admin", "nope")
	require.Error(t, err)
	require.True(t, apierr.IsAuth(err))
	require.False(t, a.Logged())
}

func TestLogin_WrappedStyle(t *testing.T) {
	for _, st := range []apierr.Style{apierr.StyleAuto, apierr.StyleWrapped} {
		t.Run(string(st), func(t *testing.T) {
			_, url := startServer(t, adminfake.WithStyle(adminfake.StyleWrapped))
			a := NewV1(url, WithErrorStyle(st))
			ctx := context.Background()

			err := a.Login(ctx, "admin", "nope")
			require.True(t, apierr.IsAuth(err))

			_, err = a.GetConfig(ctx)
			require.True(t, apierr.IsAuth(err))

			require.NoError(t, a.Login(ctx, "admin", "secret"))
			_, err = a.GetConfig(ctx)
			require.NoError(t, err)
		})
	}
}

func TestRestore_ValidToken(t *testing.T) {
	srv, url := startServer(t)
	tok, err := srv.IssueToken("admin", time.Hour)
	require.NoError(t, err)

	a := NewV1(url, WithRestoredToken(tok))
	require.True(t, a.Logged(), "restored token is used optimistically")
	waitSettled(t, a)

	require.True(t, a.Logged())
	require.Equal(t, tok, a.AuthToken())
}

func TestRestore_ExpiredToken(t *testing.T) {
	srv, url := startServer(t)
	tok, err := srv.IssueToken("admin", -time.Minute)
	require.NoError(t, err)

	var log tokenLog
	a := NewV1(url, WithRestoredToken(tok), WithTokenObserver(log.record))
	waitSettled(t, a)

	require.False(t, a.Logged())
	require.Equal(t, []string{""}, log.all())
}

func TestRestore_ServerDown_ClearsToken(t *testing.T) {
	hs := httptest.NewServer(adminfake.New())
	url := hs.URL
	hs.Close()

	var log tokenLog
	a := NewV1(url, WithRestoredToken("persisted"), WithTokenObserver(log.record))
	waitSettled(t, a)

	require.False(t, a.Logged())
	require.Empty(t, a.AuthToken())
	require.Equal(t, []string{""}, log.all())

	_, err := a.GetConfig(context.Background())
	var te *transport.TransportError
	require.ErrorAs(t, err, &te)
}

func TestLogout_ServerDown(t *testing.T) {
	hs := httptest.NewServer(adminfake.New(adminfake.WithUser("admin", "secret")))

	var log tokenLog
	a := NewV1(hs.URL, WithTokenObserver(log.record))
	require.NoError(t, a.Login(context.Background(), "admin", "secret"))
	tok := a.AuthToken()
	require.NotEmpty(t, tok)

	hs.Close()

	require.NotPanics(t, func() { a.Logout(context.Background()) })
	require.False(t, a.Logged())
	require.Equal(t, []string{tok, ""}, log.all())
}

func TestChangePassword(t *testing.T) {
	_, url := startServer(t)
	a := NewV1(url)
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "admin", "secret"))

	err := a.ChangePassword(ctx, "wrong", "next")
	require.Error(t, err)
	require.Equal(t, adminfake.KindWrongPassword, apierr.Kind(err))
	require.False(t, apierr.IsAuth(err))

	require.NoError(t, a.ChangePassword(ctx, "secret", "next"))
	a.Logout(ctx)

	require.True(t, apierr.IsAuth(a.Login(ctx, "admin", "secret")))
	require.NoError(t, a.Login(ctx, "admin", "next"))
}

/*************
 * Resources
 *************/

func TestLogoutForgetsETags(t *testing.T) {
	srv, url := startServer(t)
	a := NewV1(url)
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "admin", "secret"))

	_, err := a.GetConfig(ctx)
	require.NoError(t, err)
	a.Logout(ctx)

	require.NoError(t, a.Login(ctx, "admin", "secret"))
	require.NoError(t, a.SetConfig(ctx, models.ConfigOnlineMode, true))
	require.Empty(t, srv.LastIfMatch(common.APIBasePath+"/config"))
}

func TestWhitelistScenario(t *testing.T) {
	srv, url := startServer(t)
	a := NewV1(url)
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "admin", "secret"))

	require.NoError(t, a.SetConfig(ctx, models.ConfigEnableWhitelist, true))

	for _, name := range []string{"Alice", "Bob"} {
		_, err := a.GetWhitelist(ctx)
		require.NoError(t, err)
		require.NoError(t, a.AddWhitelistPlayer(ctx, name))
	}

	wl, err := a.GetWhitelist(ctx)
	require.NoError(t, err)
	require.Len(t, wl.Players, 2)
	require.Equal(t, "Alice", wl.Players[0].Name)

	require.NoError(t, a.RemoveWhitelistPlayer(ctx, 0))

	wl, err = a.GetWhitelist(ctx)
	require.NoError(t, err)
	require.Len(t, wl.Players, 1)
	require.Equal(t, "Bob", wl.Players[0].Name)

	srv.AddPlayer("whitelist", models.PlayerInfo{Name: "Carol"})
	err = a.RemoveWhitelistPlayer(ctx, 0)
	require.True(t, apierr.IsConflict(err))

	cfg, err := a.GetConfig(ctx)
	require.NoError(t, err)
	require.True(t, cfg.EnableWhitelist)
}

func TestBlacklistAndIPs(t *testing.T) {
	_, url := startServer(t)
	a := NewV1(url)
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "admin", "secret"))

	require.NoError(t, a.AddBlacklistPlayer(ctx, "Griefer"))
	bl, err := a.GetBlacklist(ctx)
	require.NoError(t, err)
	require.Len(t, bl.Players, 1)

	require.NoError(t, a.RemoveBlacklistPlayer(ctx, 0))

	require.ErrorIs(t, a.AddWhitelistIP(ctx, "1.2.3.4"), apierr.ErrNotImplemented)
	require.ErrorIs(t, a.RemoveWhitelistIP(ctx, 0), apierr.ErrNotImplemented)
	require.ErrorIs(t, a.AddBlacklistIP(ctx, "1.2.3.4"), apierr.ErrNotImplemented)
	require.ErrorIs(t, a.RemoveBlacklistIP(ctx, 0), apierr.ErrNotImplemented)
}

func TestGetConnections(t *testing.T) {
	srv, url := startServer(t)
	a := NewV1(url)
	ctx := context.Background()

	_, err := a.GetConnections(ctx)
	require.True(t, apierr.IsAuth(err))

	require.NoError(t, a.Login(ctx, "admin", "secret"))
	srv.Connect("127.0.0.1:40000", time.Unix(1700000000, 0), nil)

	conns, err := a.GetConnections(ctx)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	require.Nil(t, conns[0].Player)
}
