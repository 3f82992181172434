// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
)

// Domain errors shared by the service layer. Storage-level errors (not found,
// version conflict, duplicate key) live in internal/storage.
var (
	ErrForbidden         = errors.New("not permitted")
	ErrInvalidTransition = errors.New("invalid shift transition")
)

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
