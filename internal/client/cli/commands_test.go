package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/adminfake"
	"github.com/dmitrijs2005/mcadmin/internal/client/api"
	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/common"
	"github.com/dmitrijs2005/mcadmin/internal/logging"
	"github.com/stretchr/testify/require"
)

func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(prompt string, _ io.Writer) (string, error) {
		require.NotEmpty(t, pws, "unexpected prompt %q", prompt)
		pw := pws[0]
		pws = pws[1:]
		return pw, nil
	}
}

func newTestApp(t *testing.T, input string) (*App, *adminfake.Server, *bytes.Buffer) {
	t.Helper()
	srv := adminfake.New(adminfake.WithUser("admin", "secret"))
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)

	var out bytes.Buffer
	a := newApp(api.NewV1(hs.URL), logging.Nop(), rdr(input), &out)
	return a, srv, &out
}

func TestApp_LoginPromptsForUsername(t *testing.T) {
	stubPasswords(t, "secret")
	a, _, out := newTestApp(t, "admin\n")
	ctx := context.Background()

	require.Equal(t, "(anonymous)", a.getStatus())
	require.NoError(t, a.Login(ctx, ""))
	require.True(t, a.isLoggedIn())
	require.Equal(t, "(admin)", a.getStatus())
	require.Contains(t, out.String(), "Logged in.")

	require.NoError(t, a.Verify(ctx))
	require.Contains(t, out.String(), "Session is valid.")

	require.NoError(t, a.Logout(ctx))
	require.False(t, a.isLoggedIn())
	require.NoError(t, a.Verify(ctx))
	require.Contains(t, out.String(), "No valid session.")
}

func TestApp_LoginWrongPassword(t *testing.T) {
	stubPasswords(t, "nope")
	a, _, _ := newTestApp(t, "")

	err := a.Login(context.Background(), "admin")
	require.True(t, apierr.IsAuth(err))
	require.False(t, a.isLoggedIn())
}

func TestApp_ConfigCommands(t *testing.T) {
	stubPasswords(t, "secret")
	a, _, out := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "admin"))

	require.NoError(t, a.ShowConfig(ctx))
	require.Contains(t, out.String(), "onlineMode")
	require.Contains(t, out.String(), "false")

	require.NoError(t, a.SetConfig(ctx, "enableWhitelist", "true"))
	require.Contains(t, out.String(), "enableWhitelist set to true.")

	require.ErrorIs(t, a.SetConfig(ctx, "motd", "true"), common.ErrUnknownConfigKey)
	require.Error(t, a.SetConfig(ctx, "onlineMode", "maybe"))
}

func TestApp_PlayerCommands(t *testing.T) {
	stubPasswords(t, "secret")
	a, srv, out := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "admin"))

	require.NoError(t, a.ListPlayers(ctx, listWhite))
	require.Contains(t, out.String(), "No players.")

	require.NoError(t, a.AddPlayer(ctx, listWhite, "Alice"))
	require.NoError(t, a.ListPlayers(ctx, listWhite))
	require.Contains(t, out.String(), "Alice")
	require.Contains(t, out.String(), "offline")

	require.NoError(t, a.RemovePlayer(ctx, listWhite, "0"))
	require.Contains(t, out.String(), "Removed #0.")

	require.ErrorIs(t, a.RemovePlayer(ctx, listBlack, "x"), common.ErrInvalidIndex)
	require.ErrorIs(t, a.RemovePlayer(ctx, listBlack, "-1"), common.ErrInvalidIndex)

	require.NoError(t, a.ListPlayers(ctx, listBlack))
	srv.AddPlayer("blacklist", models.PlayerInfo{Name: "Griefer"})
	err := a.RemovePlayer(ctx, listBlack, "0")
	require.True(t, apierr.IsConflict(err))

	require.NoError(t, a.ListPlayers(ctx, listBlack))
	require.NoError(t, a.AddPlayer(ctx, listBlack, "Other"))
	require.NoError(t, a.ListPlayers(ctx, listBlack))
	require.Contains(t, out.String(), "Griefer")
}

func TestApp_Connections(t *testing.T) {
	stubPasswords(t, "secret")
	a, srv, out := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "admin"))

	require.NoError(t, a.Connections(ctx))
	require.Contains(t, out.String(), "No connections.")

	srv.Connect("10.1.1.1:25565", time.Unix(1700000000, 0), &models.PlayerInfo{Name: "Steve"})
	require.NoError(t, a.Connections(ctx))
	require.Contains(t, out.String(), "10.1.1.1:25565")
	require.Contains(t, out.String(), "Steve")
}

func TestApp_ChangePassword(t *testing.T) {
	stubPasswords(t, "secret", "secret", "new", "other", "secret", "new", "new")
	a, _, out := newTestApp(t, "")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx, "admin"))

	require.ErrorContains(t, a.ChangePassword(ctx), "do not match")
	require.NoError(t, a.ChangePassword(ctx))
	require.Contains(t, out.String(), "Password changed.")
}

func TestApp_AwaitSession(t *testing.T) {
	srv := adminfake.New(adminfake.WithUser("admin", "secret"))
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)
	tok, err := srv.IssueToken("admin", time.Hour)
	require.NoError(t, err)

	var out bytes.Buffer
	a := newApp(api.NewV1(hs.URL, api.WithRestoredToken(tok)), logging.Nop(), rdr(""), &out)
	a.awaitSession(context.Background())

	require.True(t, a.isLoggedIn())
	require.Equal(t, "(restored session)", a.getStatus())
	require.Contains(t, out.String(), "Resumed previous session.")
}

func TestApp_CloseWaitsForRestoreVerdict(t *testing.T) {
	release := make(chan struct{})
	hs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type":"AuthError"}`))
	}))
	t.Cleanup(hs.Close)

	var mu sync.Mutex
	var events []string
	record := func(e string) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}

	client := api.NewV1(hs.URL,
		api.WithRestoredToken("persisted"),
		api.WithTokenObserver(func(tok string) { record("token=" + tok) }),
	)
	var out bytes.Buffer
	a := newApp(client, logging.Nop(), rdr(""), &out)
	a.verifyTimeout = 10 * time.Millisecond
	a.closeFn = func() error {
		record("closed")
		return nil
	}

	a.awaitSession(context.Background())
	require.True(t, a.isLoggedIn())

	done := make(chan error, 1)
	go func() { done <- a.Close() }()

	select {
	case <-done:
		t.Fatal("Close returned before restore verification finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"token=", "closed"}, events)
}
