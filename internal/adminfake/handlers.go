package adminfake

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/client/models"
	"github.com/dmitrijs2005/mcadmin/internal/common"
	"github.com/dmitrijs2005/mcadmin/internal/cryptox"
	"github.com/gorilla/mux"
)

type errorBody struct {
	Status  string `json:"status,omitempty"`
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type okBody struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError uses the HTTP status in raw style; wrapped servers answer 200
// and put the verdict in the body.
func (s *Server) writeError(w http.ResponseWriter, status int, kind, msg string) {
	if s.style == StyleWrapped {
		writeJSON(w, http.StatusOK, errorBody{Status: "error", Type: kind, Message: msg})
		return
	}
	writeJSON(w, status, errorBody{Type: kind, Message: msg})
}

func (s *Server) writeOK(w http.ResponseWriter, payload any, version string) {
	if version != "" && s.etags.Load() {
		w.Header().Set(common.ETagHeaderName, `"`+version+`"`)
	}
	if s.style == StyleWrapped {
		writeJSON(w, http.StatusOK, okBody{Status: "ok", Data: payload})
		return
	}
	if payload == nil {
		payload = struct{}{}
	}
	writeJSON(w, http.StatusOK, payload)
}

// checkPrecondition enforces If-Match against the current version.
// s.mu must be held.
func (s *Server) checkPrecondition(w http.ResponseWriter, r *http.Request, version string) bool {
	ifMatch := r.Header.Get(common.IfMatchHeaderName)
	s.ifMatch[r.URL.Path] = ifMatch
	if ifMatch == "" || ifMatch == `"`+version+`"` || ifMatch == "*" {
		return true
	}
	s.writeError(w, http.StatusPreconditionFailed, KindConflict, "resource was modified")
	return false
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

/*************
 * Auth
 *************/

type loginRequest struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, KindBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Username]
	s.mu.Unlock()
	if !ok || !cryptox.CheckVerifier(req.PasswordHash, u.salt, u.verifier) {
		s.writeError(w, http.StatusUnauthorized, KindAuth, "invalid username or password")
		return
	}

	tok, err := s.IssueToken(req.Username, s.tokenTTL)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Internal", err.Error())
		return
	}
	s.writeOK(w, map[string]string{"token": tok}, "")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	s.mu.Lock()
	s.revoked[c.ID] = struct{}{}
	s.mu.Unlock()
	s.writeOK(w, nil, "")
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	s.writeOK(w, nil, "")
}

type changePasswordRequest struct {
	OldPasswordHash string `json:"oldPasswordHash"`
	NewPasswordHash string `json:"newPasswordHash"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, KindBadRequest, err.Error())
		return
	}

	name := claimsFrom(r).Subject
	s.mu.Lock()
	u, ok := s.users[name]
	s.mu.Unlock()
	if !ok || !cryptox.CheckVerifier(req.OldPasswordHash, u.salt, u.verifier) {
		s.writeError(w, http.StatusBadRequest, KindWrongPassword, "old password does not match")
		return
	}
	if err := s.setPassword(name, req.NewPasswordHash); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Internal", err.Error())
		return
	}
	s.writeOK(w, nil, "")
}

/*************
 * Config
 *************/

type configOp struct {
	Op    models.ConfigKey `json:"op"`
	Value *bool            `json:"value"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cfg, version := s.config, s.configVersion
	s.mu.Unlock()
	s.writeOK(w, cfg, version)
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var op configOp
	if err := decode(r, &op); err != nil {
		s.writeError(w, http.StatusBadRequest, KindBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.checkPrecondition(w, r, s.configVersion) {
		return
	}
	if op.Value == nil || !s.config.Set(op.Op, *op.Value) {
		s.writeError(w, http.StatusBadRequest, KindInvalidOp, "unknown config op "+string(op.Op))
		return
	}
	s.configVersion = newVersion()
	s.writeOK(w, nil, "")
}

/*************
 * Whitelist / blacklist
 *************/

type listBody struct {
	Players []models.PlayerInfo `json:"players"`
	IPs     []string            `json:"ips"`
}

type listOp struct {
	Op    string `json:"op"`
	Value string `json:"value"`
	Index *int   `json:"index"`
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	l := s.lists[mux.Vars(r)["list"]]
	body := listBody{
		Players: append([]models.PlayerInfo{}, l.players...),
		IPs:     append([]string{}, l.ips...),
	}
	version := l.version
	s.mu.Unlock()

	s.writeOK(w, body, version)
}

func (s *Server) handleMutateList(w http.ResponseWriter, r *http.Request) {
	var op listOp
	if err := decode(r, &op); err != nil {
		s.writeError(w, http.StatusBadRequest, KindBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.lists[mux.Vars(r)["list"]]
	if !s.checkPrecondition(w, r, l.version) {
		return
	}

	switch op.Op {
	case "addpl":
		if op.Value == "" {
			s.writeError(w, http.StatusBadRequest, KindBadRequest, "empty player")
			return
		}
		l.players = append(l.players, models.PlayerInfo{Name: op.Value, ID: playerID(op.Value, s.config.OnlineMode)})
	case "rmpl":
		if op.Index == nil || *op.Index < 0 || *op.Index >= len(l.players) {
			s.writeError(w, http.StatusBadRequest, KindOutOfRange, "no player at index")
			return
		}
		i := *op.Index
		l.players = append(l.players[:i], l.players[i+1:]...)
	default:
		s.writeError(w, http.StatusBadRequest, KindInvalidOp, "unknown list op "+op.Op)
		return
	}

	l.version = newVersion()
	s.writeOK(w, nil, "")
}

/*************
 * Connections
 *************/

type connWire struct {
	ID     int64              `json:"id"`
	Addr   string             `json:"addr"`
	When   int64              `json:"when"`
	Player *models.PlayerInfo `json:"player,omitempty"`
}

func (s *Server) handleConns(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]connWire, 0, len(s.conns))
	for _, c := range s.conns {
		out = append(out, connWire{ID: c.id, Addr: c.addr, When: c.when.Unix(), Player: c.player})
	}
	s.mu.Unlock()

	if s.style == StyleWrapped {
		s.writeOK(w, out, "")
		return
	}
	s.writeOK(w, map[string]any{"data": out}, "")
}

/*************
 * Out-of-band changes, used to simulate other admins
 *************/

// SetConfig changes a config key as another client would, bumping its version.
func (s *Server) SetConfig(key models.ConfigKey, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config.Set(key, value) {
		s.configVersion = newVersion()
	}
}

// AddPlayer appends to "whitelist" or "blacklist" as another client would.
func (s *Server) AddPlayer(list string, p models.PlayerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.lists[list]
	l.players = append(l.players, p)
	l.version = newVersion()
}

// Connect registers a live connection and returns its id.
func (s *Server) Connect(addr string, when time.Time, player *models.PlayerInfo) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextConnID++
	s.conns = append(s.conns, connection{id: s.nextConnID, addr: addr, when: when, player: player})
	return s.nextConnID
}

// DisableETags makes GET responses omit the ETag header.
func (s *Server) DisableETags() {
	s.etags.Store(false)
}

// LastIfMatch returns the If-Match header of the last mutation to path
// (full request path, e.g. "/api/v1/config").
func (s *Server) LastIfMatch(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ifMatch[path]
}
