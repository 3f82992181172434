// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package lifecycle implements the shift state machine. Apply is a pure
// function of (shift, action, actor, now): it never reads the system clock,
// never touches storage and never mutates its input, so every rule is
// testable in isolation. Persisting the result, and doing so under the
// version check, is the caller's job.
package lifecycle

import (
	"time"

	"github.com/canonical/shift-service/internal/authorization"
	"github.com/canonical/shift-service/internal/types"
)

// Action describes a requested transition: the target state, plus the
// assignee when the transition is an assignment.
type Action struct {
	To         types.ShiftState
	AssigneeID string
}

// Apply validates and executes one transition, returning the updated shift
// value. On any failure the error is returned and the input shift is left
// untouched, there is no partial state.
func Apply(shift types.Shift, action Action, actor types.Actor, now time.Time, grace time.Duration) (types.Shift, error) {
	if !action.To.Known() {
		return shift, types.NewValidationError("state", "unknown target state")
	}

	from := shift.State
	isAdmin := actor.Role == types.RoleAdmin

	// Terminal states reject structurally before any role rule applies, only
	// the admin override gets past this.
	if from.Terminal() && !isAdmin {
		return shift, types.ErrInvalidTransition
	}

	if !authorization.CanTransition(actor.Role, &shift, from, action.To, actor.ID) {
		return shift, types.ErrForbidden
	}

	switch action.To {
	case types.ShiftAssigned:
		if from == types.ShiftPending || isAdmin {
			if action.AssigneeID == "" && shift.UserID == "" {
				return shift, types.ErrInvalidTransition
			}
		}
	case types.ShiftInProgress:
		if shift.UserID == "" && action.AssigneeID == "" {
			return shift, types.ErrInvalidTransition
		}
		// Admin override is exempt from timing: "any transition, any time".
		if !isAdmin && now.Before(shift.StartAt.Add(-grace)) {
			return shift, types.ErrInvalidTransition
		}
	case types.ShiftCompleted:
		if !isAdmin && now.Before(shift.StartAt) {
			return shift, types.ErrInvalidTransition
		}
	case types.ShiftCancelled, types.ShiftPending:
		// No timing precondition.
	}

	updated := shift
	updated.State = action.To
	if action.AssigneeID != "" {
		updated.UserID = action.AssigneeID
	}
	updated.Version = shift.Version + 1
	updated.UpdatedAt = now
	updated.LastChangedAt = now.UnixMilli()

	return updated, nil
}
