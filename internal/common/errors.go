// Package common defines shared constants and sentinel errors used across
// client and fake-server layers of mcadmin. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Local validation errors, returned before any request is sent.
	ErrUnknownConfigKey = errors.New("unknown config key")
	ErrInvalidIndex     = errors.New("invalid index")

	// Session errors.
	ErrEmptyToken = errors.New("server returned empty token")
)
