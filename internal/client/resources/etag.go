package resources

import (
	"net/http"
	"sync"

	"github.com/dmitrijs2005/mcadmin/internal/common"
)

// ETagStore keeps the last seen ETag per resource path.
type ETagStore struct {
	mu   sync.Mutex
	tags map[string]string
}

func NewETagStore() *ETagStore {
	return &ETagStore{tags: make(map[string]string)}
}

func (s *ETagStore) Get(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tag, ok := s.tags[path]
	return tag, ok
}

// Remember stores the ETag from h under path, or drops the slot when h has none.
func (s *ETagStore) Remember(path string, h http.Header) {
	tag := h.Get(common.ETagHeaderName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if tag == "" {
		delete(s.tags, path)
		return
	}
	s.tags[path] = tag
}

func (s *ETagStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tags)
}
