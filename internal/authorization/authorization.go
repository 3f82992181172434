// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/shift-service/internal/logging"
	"github.com/canonical/shift-service/internal/monitoring"
	"github.com/canonical/shift-service/internal/tracing"
	"github.com/canonical/shift-service/internal/types"
)

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer wraps the pure rule set with tracing and audit logging so
// services get observable checks without the rules losing their purity.
type Authorizer struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}

func (a *Authorizer) CheckTransition(ctx context.Context, actor types.Actor, shift *types.Shift, from, to types.ShiftState) bool {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckTransition")
	defer span.End()

	allowed := CanTransition(actor.Role, shift, from, to, actor.ID)
	if !allowed {
		a.logger.Security().PermissionDenied(actor.ID, "shift.transition")
	}
	return allowed
}

func (a *Authorizer) CheckRead(ctx context.Context, actor types.Actor, shift *types.Shift) bool {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckRead")
	defer span.End()

	return CanRead(actor.Role, shift, actor.ID, actor.TenantID)
}

func (a *Authorizer) CheckCreate(ctx context.Context, actor types.Actor) bool {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckCreate")
	defer span.End()

	return CanCreate(actor.Role)
}

func (a *Authorizer) CheckProvisionUser(ctx context.Context, actor types.Actor) bool {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckProvisionUser")
	defer span.End()

	return CanProvisionUser(actor.Role)
}

func (a *Authorizer) CheckChangeRole(ctx context.Context, actor types.Actor) bool {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckChangeRole")
	defer span.End()

	return CanChangeRole(actor.Role)
}
