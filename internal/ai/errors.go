// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is matched by every MissingCredentialError.
var ErrMissingCredential = errors.New("gemini API key is required")

// MissingCredentialError is returned before any network call when no
// credential could be resolved.
type MissingCredentialError struct {
	Op string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("gemini %s: %v", e.Op, ErrMissingCredential)
}

func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

// ServiceCallError covers transport failures, non-2xx responses and
// unreadable response envelopes. Message is the service's own message
// when one was returned.
type ServiceCallError struct {
	Op         string
	StatusCode int // 0 when the request never got a response
	Message    string
	Err        error
}

func (e *ServiceCallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gemini %s (status %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini %s: %s", e.Op, e.Message)
}

func (e *ServiceCallError) Unwrap() error { return e.Err }

// SchemaError means the service answered but the payload does not match
// the declared response schema. Path points at the offending field.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response schema: %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
