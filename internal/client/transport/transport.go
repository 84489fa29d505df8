// Package transport is the HTTP primitive under the admin API client.
//
// A Transport knows the server base URL, applies the fixed request timeout
// and injects the current bearer token header into every outgoing request.
// It does not interpret payloads: a 2xx response is returned as is, anything
// else becomes an *HTTPError, and failures to talk to the server at all
// become a *TransportError.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mcadmin/internal/common"
)

// DefaultTimeout bounds every request, including reading the response body.
const DefaultTimeout = 10 * time.Second

// Request describes one API call. Path is relative to the API base path.
type Request struct {
	Method string
	Path   string
	Body   any
	Header http.Header

	// Anonymous suppresses the token header (used by login).
	Anonymous bool
}

type Response struct {
	Status int
	Data   []byte
	Header http.Header
}

type Transport struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Transport)

// WithHTTPClient uses a copy of c, e.g. one bound to an httptest server.
// The copy always gets DefaultTimeout; c itself is left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		cp := *c
		cp.Timeout = DefaultTimeout
		t.client = &cp
	}
}

func New(baseURL string, opts ...Option) *Transport {
	t := &Transport{
		baseURL: strings.TrimRight(baseURL, "/") + common.APIBasePath,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// SetToken sets the token header value; an empty token removes the header.
func (t *Transport) SetToken(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

func (t *Transport) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

func (t *Transport) Do(ctx context.Context, r Request) (*Response, error) {
	req, err := t.newRequest(ctx, r)
	if err != nil {
		return nil, &TransportError{Method: r.Method, Path: r.Path, Err: err}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: r.Method, Path: r.Path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: r.Method, Path: r.Path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{
			Method: r.Method,
			Path:   r.Path,
			Status: resp.StatusCode,
			Body:   data,
			Header: resp.Header,
		}
	}

	return &Response{Status: resp.StatusCode, Data: data, Header: resp.Header}, nil
}

func (t *Transport) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, t.baseURL+r.Path, body)
	if err != nil {
		return nil, err
	}

	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !r.Anonymous {
		if tok := t.Token(); tok != "" {
			req.Header.Set(common.TokenHeaderName, tok)
		}
	}

	return req, nil
}
