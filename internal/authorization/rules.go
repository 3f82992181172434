// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"github.com/canonical/shift-service/internal/types"
)

// The rules in this file are pure predicates over explicit inputs. They never
// error and never touch storage, the clock or any global: the service layer
// turns a false into a permission error at the boundary.

// CanTransition reports whether an actor with the given role may move a shift
// between the two states.
//
// Admin may perform any transition, including into and out of terminal
// states. Supervisor assigns and cancels. SecurityGuard works only its own
// shifts: start an assigned one, complete one in progress. Roles outside the
// closed set get nothing.
func CanTransition(role types.Role, shift *types.Shift, from, to types.ShiftState, actorID string) bool {
	switch role {
	case types.RoleAdmin:
		return true
	case types.RoleSupervisor:
		switch {
		case from == types.ShiftPending && to == types.ShiftAssigned:
			return true
		case from == types.ShiftPending && to == types.ShiftCancelled:
			return true
		case from == types.ShiftAssigned && to == types.ShiftCancelled:
			return true
		}
		return false
	case types.RoleSecurityGuard:
		if shift.UserID == "" || shift.UserID != actorID {
			return false
		}
		switch {
		case from == types.ShiftAssigned && to == types.ShiftInProgress:
			return true
		case from == types.ShiftInProgress && to == types.ShiftCompleted:
			return true
		}
		return false
	}

	return false
}

// CanRead enforces tenant isolation: cross-tenant reads are denied for every
// role, there is no super-admin bypass.
func CanRead(role types.Role, shift *types.Shift, actorID, actorTenantID string) bool {
	if !role.Known() {
		return false
	}
	return shift.TenantID == actorTenantID
}

// CanCreate reports whether the role may create shifts.
func CanCreate(role types.Role) bool {
	return role == types.RoleAdmin || role == types.RoleSupervisor
}

// CanProvisionUser reports whether the role may create users in its tenant.
func CanProvisionUser(role types.Role) bool {
	return role == types.RoleAdmin || role == types.RoleSupervisor
}

// CanChangeRole reports whether the actor may change another user's role.
// Role is immutable to everyone but an admin.
func CanChangeRole(role types.Role) bool {
	return role == types.RoleAdmin
}
