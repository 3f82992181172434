// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/shift-service/internal/types"
)

// ShiftFilter narrows a tenant-scoped shift listing. The tenant predicate
// itself is not part of the filter, it is applied unconditionally.
type ShiftFilter struct {
	State          types.ShiftState
	UserID         string
	IncludeDeleted bool
}

type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUser(ctx context.Context, tenantID, id string) (*types.User, error)
	ListUsers(ctx context.Context, tenantID string, includeDeleted bool) ([]*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, expectedVersion int64) (*types.User, error)
	DeleteUser(ctx context.Context, tenantID, id string, expectedVersion int64, now time.Time) error
	ListUsersChangedSince(ctx context.Context, tenantID string, since int64) ([]*types.User, error)

	CreateShift(ctx context.Context, s *types.Shift) (*types.Shift, error)
	GetShift(ctx context.Context, tenantID, id string) (*types.Shift, error)
	ListShifts(ctx context.Context, tenantID string, f ShiftFilter) ([]*types.Shift, error)
	UpdateShift(ctx context.Context, s *types.Shift, expectedVersion int64) (*types.Shift, error)
	DeleteShift(ctx context.Context, tenantID, id string, expectedVersion int64, now time.Time) error
	ListShiftsChangedSince(ctx context.Context, tenantID string, since int64) ([]*types.Shift, error)

	GetIdempotencyKey(ctx context.Context, tenantID, key string) (string, error)
	PutIdempotencyKey(ctx context.Context, tenantID, key, shiftID string) error
}
