package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/mcadmin/internal/client/apierr"
	"github.com/dmitrijs2005/mcadmin/internal/client/transport"
	"github.com/dmitrijs2005/mcadmin/internal/common"
)

type Doer interface {
	Do(ctx context.Context, r transport.Request) (*transport.Response, error)
}

// Client is the shared fetch/mutate machinery behind every resource.
type Client struct {
	tr    Doer
	cls   *apierr.Classifier
	etags *ETagStore
}

func NewClient(tr Doer, cls *apierr.Classifier, etags *ETagStore) *Client {
	return &Client{tr: tr, cls: cls, etags: etags}
}

func (c *Client) ETags() *ETagStore { return c.etags }

func (c *Client) do(ctx context.Context, r transport.Request) (*transport.Response, []byte, error) {
	resp, err := c.tr.Do(ctx, r)
	if err != nil {
		return nil, nil, c.cls.Classify(err)
	}
	payload, err := c.cls.Check(resp)
	if err != nil {
		return nil, nil, err
	}
	return resp, payload, nil
}

// fetch GETs path into out and records the response ETag for path.
func (c *Client) fetch(ctx context.Context, path string, out any) error {
	resp, payload, err := c.do(ctx, transport.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	c.etags.Remember(path, resp.Header)
	return nil
}

// mutate POSTs body to path, conditioned on the ETag of the last fetch.
func (c *Client) mutate(ctx context.Context, path string, body any, header http.Header) error {
	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if h.Get(common.IfMatchHeaderName) == "" {
		if tag, ok := c.etags.Get(path); ok {
			h.Set(common.IfMatchHeaderName, tag)
		}
	}

	_, _, err := c.do(ctx, transport.Request{Method: http.MethodPost, Path: path, Body: body, Header: h})
	return err
}
