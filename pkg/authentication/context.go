// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/shift-service/internal/types"
)

// Principal is the authenticated caller extracted from a verified token. Every
// request handler resolves permissions against it, so it carries the tenant
// and role alongside the subject.
type Principal struct {
	UserID   string
	TenantID string
	Role     types.Role
}

// Actor converts the principal into the value the authorization rules take.
func (p *Principal) Actor() types.Actor {
	return types.Actor{ID: p.UserID, TenantID: p.TenantID, Role: p.Role}
}

// Define a private custom type to avoid collisions
type contextKey struct{}

var principalContextKey = contextKey{}

// WithPrincipal returns a new context carrying the given principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the principal from the context.
// Returns nil and false if no principal is present.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	return p, ok
}
