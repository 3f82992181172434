// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"time"

	"github.com/canonical/shift-service/internal/types"
)

type ServiceInterface interface {
	CreateUser(ctx context.Context, actor types.Actor, req *CreateUserRequest) (*types.User, error)
	GetUser(ctx context.Context, actor types.Actor, id string) (*types.User, error)
	ListUsers(ctx context.Context, actor types.Actor, includeDeleted bool) ([]*types.User, error)
	UpdateUser(ctx context.Context, actor types.Actor, req *UpdateUserRequest) (*types.User, error)
	DeleteUser(ctx context.Context, actor types.Actor, id string, expectedVersion int64) error
	ListChangedSince(ctx context.Context, actor types.Actor, since int64) ([]*types.User, error)
}

type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUser(ctx context.Context, tenantID, id string) (*types.User, error)
	ListUsers(ctx context.Context, tenantID string, includeDeleted bool) ([]*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, expectedVersion int64) (*types.User, error)
	DeleteUser(ctx context.Context, tenantID, id string, expectedVersion int64, now time.Time) error
	ListUsersChangedSince(ctx context.Context, tenantID string, since int64) ([]*types.User, error)
}

type AuthzInterface interface {
	CheckProvisionUser(ctx context.Context, actor types.Actor) bool
	CheckChangeRole(ctx context.Context, actor types.Actor) bool
}
