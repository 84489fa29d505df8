// Package session owns the admin API bearer token.
//
// A Manager is either Anonymous (no token) or Authenticated. Only the Manager
// writes the token; it mirrors every change into the transport header and
// notifies token observers so an outer layer can persist it.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/client/transport"
	"github.com/dmitrijs2005/mcadmin/internal/common"
	"github.com/dmitrijs2005/mcadmin/internal/cryptox"
	"github.com/dmitrijs2005/mcadmin/internal/logging"
)

// Transport is the part of *transport.Transport the Manager relies on.
type Transport interface {
	Do(ctx context.Context, r transport.Request) (*transport.Response, error)
	SetToken(token string)
}

type loginRequest struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	OldPasswordHash string `json:"oldPasswordHash"`
	NewPasswordHash string `json:"newPasswordHash"`
}

type observer struct {
	id int
	fn func(token string)
}

type Manager struct {
	tr  Transport
	cls *apierr.Classifier
	log logging.Logger

	mu        sync.Mutex
	token     string
	observers []observer
	nextID    int

	restored string
	settled  chan struct{}
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithRestoredToken starts the Manager Authenticated with a previously
// persisted token and verifies it in the background.
func WithRestoredToken(token string) Option {
	return func(m *Manager) { m.restored = token }
}

// WithTokenObserver registers fn before restore verification starts, so a
// persistence layer cannot miss the restore outcome.
func WithTokenObserver(fn func(token string)) Option {
	return func(m *Manager) { m.addObserver(fn) }
}

func NewManager(tr Transport, cls *apierr.Classifier, opts ...Option) *Manager {
	m := &Manager{
		tr:      tr,
		cls:     cls,
		log:     logging.Nop(),
		settled: make(chan struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	m.log = m.log.With("component", "session")

	if m.restored == "" {
		close(m.settled)
		return m
	}

	m.token = m.restored
	m.tr.SetToken(m.restored)
	go m.restore(m.restored)

	return m
}

// Settled is closed once restore verification has finished, or immediately
// when there was no token to restore.
func (m *Manager) Settled() <-chan struct{} {
	return m.settled
}

func (m *Manager) restore(token string) {
	defer close(m.settled)
	ctx := context.Background()

	ok, err := m.Verify(ctx)
	if err != nil {
		m.log.Warn(ctx, "restored token could not be verified", "err", err)
	}
	if !ok && m.clearIf(token) {
		m.log.Info(ctx, "restored token rejected, session cleared")
	}
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) Logged() bool {
	return m.Token() != ""
}

// OnTokenChange registers fn to be called with the new token (empty on
// logout) after every change. The returned func unsubscribes.
func (m *Manager) OnTokenChange(fn func(token string)) (unsubscribe func()) {
	id := m.addObserver(fn)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, o := range m.observers {
			if o.id == id {
				m.observers = append(m.observers[:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) addObserver(fn func(string)) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.observers = append(m.observers, observer{id: m.nextID, fn: fn})
	return m.nextID
}

func (m *Manager) setToken(token string) {
	m.mu.Lock()
	obs := m.swapLocked(token)
	m.mu.Unlock()
	notify(obs, token)
}

// clearIf clears the token only if it still equals expected, so a late
// restore verdict cannot wipe a session created by a newer login.
func (m *Manager) clearIf(expected string) bool {
	m.mu.Lock()
	if m.token != expected {
		m.mu.Unlock()
		return false
	}
	obs := m.swapLocked("")
	m.mu.Unlock()
	notify(obs, "")
	return true
}

// swapLocked stores token and returns the observers to notify, or nil when
// nothing changed. m.mu must be held.
func (m *Manager) swapLocked(token string) []observer {
	if m.token == token {
		return nil
	}
	m.token = token
	m.tr.SetToken(token)
	obs := make([]observer, len(m.observers))
	copy(obs, m.observers)
	return obs
}

func notify(obs []observer, token string) {
	for _, o := range obs {
		o.fn(token)
	}
}

func (m *Manager) do(ctx context.Context, r transport.Request) ([]byte, error) {
	resp, err := m.tr.Do(ctx, r)
	if err != nil {
		return nil, m.cls.Classify(err)
	}
	return m.cls.Check(resp)
}

// Login exchanges credentials for a token. The password only leaves the
// process as cryptox.HashPassword. On failure the session is unchanged.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	payload, err := m.do(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      "/login",
		Body:      loginRequest{Username: username, PasswordHash: cryptox.HashPassword(password)},
		Anonymous: true,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	var lr loginResponse
	if err := json.Unmarshal(payload, &lr); err != nil {
		return fmt.Errorf("login: decode response: %w", err)
	}
	if lr.Token == "" {
		return fmt.Errorf("login: %w", common.ErrEmptyToken)
	}

	m.setToken(lr.Token)
	m.log.Info(ctx, "logged in", "username", username)
	return nil
}

// Logout tells the server the session is over and clears the token. The
// server call is best effort: its failure is logged and the local session
// is cleared regardless.
func (m *Manager) Logout(ctx context.Context) {
	if m.Logged() {
		if _, err := m.do(ctx, transport.Request{Method: http.MethodPost, Path: "/logout"}); err != nil {
			m.log.Warn(ctx, "logout request failed", "err", err)
		}
	}
	m.setToken("")
}

// Verify asks the server whether the current token is still valid. An
// AuthError answer is reported as false; other failures are returned.
// Verify never changes the session state.
func (m *Manager) Verify(ctx context.Context) (bool, error) {
	if !m.Logged() {
		return false, nil
	}
	if _, err := m.do(ctx, transport.Request{Method: http.MethodGet, Path: "/verify"}); err != nil {
		if apierr.IsAuth(err) {
			return false, nil
		}
		return false, fmt.Errorf("verify: %w", err)
	}
	return true, nil
}

func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := m.do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/changepasswd",
		Body: changePasswordRequest{
			OldPasswordHash: cryptox.HashPassword(oldPassword),
			NewPasswordHash: cryptox.HashPassword(newPassword),
		},
	})
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
