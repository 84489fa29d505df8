package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mcadmin/internal/client/transport"
)

type Style string

const (
	StyleAuto    Style = "auto"
	StyleWrapped Style = "wrapped"
	StyleRaw     Style = "raw"
)

func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleAuto, StyleWrapped, StyleRaw:
		return st, nil
	case "":
		return StyleAuto, nil
	default:
		return "", fmt.Errorf("unknown error style %q (valid: auto, wrapped, raw)", s)
	}
}

const statusOK = "ok"

// body is the union of both error shapes and the success envelope.
type body struct {
	Status  json.RawMessage `json:"status"`
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Classifier struct {
	style Style
}

func NewClassifier(style Style) *Classifier {
	if style == "" {
		style = StyleAuto
	}
	return &Classifier{style: style}
}

func (c *Classifier) Style() Style { return c.style }

// Check inspects a 2xx response. It returns the payload (the "data" member
// when the body has one, otherwise the whole body) or the error the body
// declares.
func (c *Classifier) Check(resp *transport.Response) ([]byte, error) {
	b, ok := parse(resp.Data)
	if !ok {
		return resp.Data, nil
	}
	if err := c.errorFrom(b, resp.Status); err != nil {
		return nil, err
	}
	if len(b.Data) > 0 && string(b.Data) != "null" {
		return b.Data, nil
	}
	return resp.Data, nil
}

// Classify converts a failed request into *AuthError or *APIError when the
// response body declares an error kind. Anything else is returned unchanged.
func (c *Classifier) Classify(err error) error {
	var he *transport.HTTPError
	if !errors.As(err, &he) {
		return err
	}
	b, ok := parse(he.Body)
	if !ok {
		return err
	}
	if typed := c.errorFrom(b, he.Status); typed != nil {
		return typed
	}
	return err
}

func parse(data []byte) (body, bool) {
	var b body
	if len(data) == 0 {
		return b, false
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return b, false
	}
	return b, true
}

// status reports the envelope status. Only a JSON string marks the wrapped
// shape; numbers and other values are treated as ordinary fields.
func (b body) status() (string, bool) {
	if len(b.Status) == 0 || b.Status[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(b.Status, &s); err != nil {
		return "", false
	}
	return s, true
}

func (c *Classifier) errorFrom(b body, status int) error {
	envStatus, wrapped := b.status()
	switch c.style {
	case StyleRaw:
		wrapped = false
	case StyleWrapped:
		if !wrapped && len(b.Status) == 0 {
			return nil
		}
	}

	var kind string
	if wrapped {
		if envStatus == statusOK {
			return nil
		}
		kind = b.Type
		if kind == "" {
			kind = envStatus
		}
	} else {
		if b.Type == "" {
			return nil
		}
		kind = b.Type
	}

	if kind == KindAuth {
		return NewAuthError(b.Message, status)
	}
	return &APIError{Type: kind, Message: b.Message, Status: status}
}
