// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/shift-service/internal/types"
)

type AuthorizerInterface interface {
	CheckTransition(ctx context.Context, actor types.Actor, shift *types.Shift, from, to types.ShiftState) bool
	CheckRead(ctx context.Context, actor types.Actor, shift *types.Shift) bool
	CheckCreate(ctx context.Context, actor types.Actor) bool
	CheckProvisionUser(ctx context.Context, actor types.Actor) bool
	CheckChangeRole(ctx context.Context, actor types.Actor) bool
}
