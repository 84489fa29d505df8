package adminfake

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/common"
	"github.com/dmitrijs2005/mcadmin/internal/cryptox"
	"github.com/dmitrijs2005/mcadmin/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Style selects the error body convention, see apierr.
type Style string

const (
	StyleRaw     Style = "raw"
	StyleWrapped Style = "wrapped"
)

const (
	KindAuth          = "AuthError"
	KindConflict      = "ConflictError"
	KindBadRequest    = "BadRequest"
	KindInvalidOp     = "InvalidOp"
	KindOutOfRange    = "IndexOutOfRange"
	KindWrongPassword = "WrongPassword"
)

const DefaultTokenTTL = time.Hour

type Server struct {
	mu sync.Mutex

	style    Style
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	log      logging.Logger
	etags    atomic.Bool

	users   map[string]*user
	revoked map[string]struct{}

	config        models.Config
	configVersion string
	lists         map[string]*playerList
	conns         []connection
	nextConnID    int64

	ifMatch map[string]string

	router *mux.Router
}

type Option func(*Server)

func WithStyle(st Style) Option {
	return func(s *Server) { s.style = st }
}

func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

// WithUser registers an account. password is the plaintext the client
// will hash before sending.
func WithUser(name, password string) Option {
	return func(s *Server) {
		if err := s.setPassword(name, cryptox.HashPassword(password)); err != nil {
			panic(err)
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		style:         StyleRaw,
		secret:        []byte(uuid.NewString()),
		tokenTTL:      DefaultTokenTTL,
		now:           time.Now,
		log:           logging.Nop(),
		users:         make(map[string]*user),
		revoked:       make(map[string]struct{}),
		configVersion: newVersion(),
		lists: map[string]*playerList{
			"whitelist": {version: newVersion()},
			"blacklist": {version: newVersion()},
		},
		ifMatch: make(map[string]string),
	}
	s.etags.Store(true)
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix(common.APIBasePath).Subrouter()
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireToken)
	authed.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	authed.HandleFunc("/verify", s.handleVerify).Methods(http.MethodGet)
	authed.HandleFunc("/changepasswd", s.handleChangePassword).Methods(http.MethodPost)
	authed.HandleFunc("/config", s.handleGetConfig).Methods(http.MethodGet)
	authed.HandleFunc("/config", s.handleSetConfig).Methods(http.MethodPost)
	authed.HandleFunc("/{list:whitelist|blacklist}", s.handleGetList).Methods(http.MethodGet)
	authed.HandleFunc("/{list:whitelist|blacklist}", s.handleMutateList).Methods(http.MethodPost)
	authed.HandleFunc("/conns", s.handleConns).Methods(http.MethodGet)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug(r.Context(), "request", "method", r.Method, "path", r.URL.Path, "status", rec.status)
	})
}

func (s *Server) setPassword(name, passwordHash string) error {
	salt, err := cryptox.NewSalt(16)
	if err != nil {
		return fmt.Errorf("salt: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[name] = &user{salt: salt, verifier: cryptox.DeriveVerifier(passwordHash, salt)}
	return nil
}
