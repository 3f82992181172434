// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"strings"

	"github.com/canonical/shift-service/internal/types"
)

type NoopVerifier struct{}

// NewNoopVerifier returns a no-op token verifier that allows all requests.
func NewNoopVerifier() *NoopVerifier {
	return &NoopVerifier{}
}

// VerifyToken parses the raw token as "userID:tenantID:role" for development
// purposes. Missing parts default to an admin in tenant "dev".
func (n *NoopVerifier) VerifyToken(ctx context.Context, rawToken string) (*Principal, error) {
	p := &Principal{UserID: rawToken, TenantID: "dev", Role: types.RoleAdmin}

	parts := strings.SplitN(rawToken, ":", 3)
	if len(parts) >= 2 {
		p.UserID = parts[0]
		p.TenantID = parts[1]
	}
	if len(parts) == 3 {
		p.Role = types.Role(parts[2])
	}

	return p, nil
}
