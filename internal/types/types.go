// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Role is the closed set of actor roles. Decoding never fails: a raw value
// outside the closed set is carried verbatim, reports Known() == false and is
// denied every permission rather than guessed at.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleSupervisor    Role = "SUPERVISOR"
	RoleSecurityGuard Role = "SECURITY_GUARD"
)

func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleSupervisor || r == RoleSecurityGuard
}

// ShiftState is the lifecycle state of a shift. Same decode contract as Role:
// unknown raw values survive round-trips and match no transition rule.
type ShiftState string

const (
	ShiftPending    ShiftState = "PENDING"
	ShiftAssigned   ShiftState = "ASSIGNED"
	ShiftInProgress ShiftState = "IN_PROGRESS"
	ShiftCompleted  ShiftState = "COMPLETED"
	ShiftCancelled  ShiftState = "CANCELLED"
)

func (s ShiftState) Known() bool {
	switch s {
	case ShiftPending, ShiftAssigned, ShiftInProgress, ShiftCompleted, ShiftCancelled:
		return true
	}
	return false
}

// Terminal reports whether the state has no outgoing transitions under
// non-admin rules.
func (s ShiftState) Terminal() bool {
	return s == ShiftCompleted || s == ShiftCancelled
}

// SyncMeta is the optimistic-concurrency triple carried by every synced
// entity. Version starts at 1 and increments on every write, Deleted is a
// tombstone (rows are never physically purged), and LastChangedAt is the
// unix-millisecond timestamp driving incremental pulls.
type SyncMeta struct {
	Version       int64 `db:"version"`
	Deleted       bool  `db:"deleted"`
	LastChangedAt int64 `db:"last_changed_at"`
}

type User struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	Role      Role      `db:"role"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	SyncMeta
}

type Shift struct {
	ID       string     `db:"id"`
	TenantID string     `db:"tenant_id"`
	Title    string     `db:"title"`
	Location string     `db:"location"`
	StartAt  time.Time  `db:"start_at"`
	EndAt    time.Time  `db:"end_at"`
	Rate     float64    `db:"rate"`
	State    ShiftState `db:"state"`
	// UserID is the assignee. It may be empty while the shift is pending and
	// it is a non-owning reference: deleting a user does not cascade here,
	// readers must tolerate a dangling ID.
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	SyncMeta
}

// Actor is the authenticated caller a request is evaluated against.
type Actor struct {
	ID       string
	TenantID string
	Role     Role
}
