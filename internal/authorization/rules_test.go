// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"fmt"
	"testing"

	"github.com/canonical/shift-service/internal/types"
)

var allStates = []types.ShiftState{
	types.ShiftPending,
	types.ShiftAssigned,
	types.ShiftInProgress,
	types.ShiftCompleted,
	types.ShiftCancelled,
}

type pair struct {
	from, to types.ShiftState
}

var supervisorAllowed = map[pair]bool{
	{types.ShiftPending, types.ShiftAssigned}:   true,
	{types.ShiftPending, types.ShiftCancelled}:  true,
	{types.ShiftAssigned, types.ShiftCancelled}: true,
}

var guardAllowed = map[pair]bool{
	{types.ShiftAssigned, types.ShiftInProgress}:  true,
	{types.ShiftInProgress, types.ShiftCompleted}: true,
}

// TestCanTransitionMatrix enumerates every state pair for every role and
// asserts the full permission matrix.
func TestCanTransitionMatrix(t *testing.T) {
	shift := &types.Shift{TenantID: "t1", UserID: "g1"}

	for _, from := range allStates {
		for _, to := range allStates {
			p := pair{from, to}

			testCases := []struct {
				role     types.Role
				actorID  string
				expected bool
			}{
				{types.RoleAdmin, "a1", true},
				{types.RoleSupervisor, "s1", supervisorAllowed[p]},
				{types.RoleSecurityGuard, "g1", guardAllowed[p]},
			}

			for _, tc := range testCases {
				name := fmt.Sprintf("%s/%s->%s", tc.role, from, to)
				t.Run(name, func(t *testing.T) {
					got := CanTransition(tc.role, shift, from, to, tc.actorID)
					if got != tc.expected {
						t.Errorf("CanTransition(%s, %s->%s) = %v, expected %v", tc.role, from, to, got, tc.expected)
					}
				})
			}
		}
	}
}

func TestCanTransitionWrongAssignee(t *testing.T) {
	shift := &types.Shift{TenantID: "t1", UserID: "g1"}

	if CanTransition(types.RoleSecurityGuard, shift, types.ShiftAssigned, types.ShiftInProgress, "g2") {
		t.Error("guard g2 must not start a shift assigned to g1")
	}
	if CanTransition(types.RoleSecurityGuard, shift, types.ShiftInProgress, types.ShiftCompleted, "g2") {
		t.Error("guard g2 must not complete a shift assigned to g1")
	}
}

func TestCanTransitionUnassignedShift(t *testing.T) {
	shift := &types.Shift{TenantID: "t1"}

	if CanTransition(types.RoleSecurityGuard, shift, types.ShiftAssigned, types.ShiftInProgress, "g1") {
		t.Error("guard must not start an unassigned shift")
	}
}

func TestCanTransitionUnrecognizedRole(t *testing.T) {
	shift := &types.Shift{TenantID: "t1", UserID: "g1"}

	for _, from := range allStates {
		for _, to := range allStates {
			if CanTransition(types.Role("SITE_MANAGER"), shift, from, to, "g1") {
				t.Errorf("unrecognized role allowed %s->%s", from, to)
			}
		}
	}
}

func TestCanRead(t *testing.T) {
	shift := &types.Shift{TenantID: "t2"}

	testCases := []struct {
		name          string
		role          types.Role
		actorTenantID string
		expected      bool
	}{
		{"same tenant admin", types.RoleAdmin, "t2", true},
		{"same tenant supervisor", types.RoleSupervisor, "t2", true},
		{"same tenant guard", types.RoleSecurityGuard, "t2", true},
		{"cross tenant admin", types.RoleAdmin, "t1", false},
		{"cross tenant supervisor", types.RoleSupervisor, "t1", false},
		{"cross tenant guard", types.RoleSecurityGuard, "t1", false},
		{"unrecognized role same tenant", types.Role("SITE_MANAGER"), "t2", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanRead(tc.role, shift, "u1", tc.actorTenantID); got != tc.expected {
				t.Errorf("CanRead = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCanCreate(t *testing.T) {
	testCases := []struct {
		role     types.Role
		expected bool
	}{
		{types.RoleAdmin, true},
		{types.RoleSupervisor, true},
		{types.RoleSecurityGuard, false},
		{types.Role("SITE_MANAGER"), false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role), func(t *testing.T) {
			if got := CanCreate(tc.role); got != tc.expected {
				t.Errorf("CanCreate(%s) = %v, expected %v", tc.role, got, tc.expected)
			}
		})
	}
}

func TestCanChangeRole(t *testing.T) {
	if !CanChangeRole(types.RoleAdmin) {
		t.Error("admin must be able to change roles")
	}
	if CanChangeRole(types.RoleSupervisor) || CanChangeRole(types.RoleSecurityGuard) {
		t.Error("only admin may change roles")
	}
}

// TestPredicatesIdempotent checks that repeated calls with identical inputs
// give identical answers, the predicates hold no state.
func TestPredicatesIdempotent(t *testing.T) {
	shift := &types.Shift{TenantID: "t1", UserID: "g1"}

	first := CanTransition(types.RoleSupervisor, shift, types.ShiftPending, types.ShiftAssigned, "s1")
	second := CanTransition(types.RoleSupervisor, shift, types.ShiftPending, types.ShiftAssigned, "s1")
	if first != second {
		t.Error("CanTransition is not idempotent")
	}

	if CanRead(types.RoleAdmin, shift, "a1", "t1") != CanRead(types.RoleAdmin, shift, "a1", "t1") {
		t.Error("CanRead is not idempotent")
	}
	if CanCreate(types.RoleAdmin) != CanCreate(types.RoleAdmin) {
		t.Error("CanCreate is not idempotent")
	}
}
