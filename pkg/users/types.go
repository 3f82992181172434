// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"time"

	"github.com/canonical/shift-service/internal/types"
)

type CreateUserRequest struct {
	Email     string     `json:"email" validate:"required,email"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
	Phone     string     `json:"phone"`
	Role      types.Role `json:"role" validate:"required"`
}

// UpdateUserRequest carries a partial update. Nil pointer fields are left
// untouched, a non-nil Role needs the role-change permission.
type UpdateUserRequest struct {
	UserID          string      `json:"-"`
	FirstName       *string     `json:"first_name"`
	LastName        *string     `json:"last_name"`
	Phone           *string     `json:"phone"`
	Role            *types.Role `json:"role"`
	ExpectedVersion int64       `json:"expected_version" validate:"required,gte=1"`
}

type UserResponse struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"tenant_id"`
	Role          types.Role `json:"role"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Phone         string     `json:"phone,omitempty"`
	Version       int64      `json:"version"`
	Deleted       bool       `json:"deleted"`
	LastChangedAt int64      `json:"last_changed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func newUserResponse(u *types.User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		TenantID:      u.TenantID,
		Role:          u.Role,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone,
		Version:       u.Version,
		Deleted:       u.Deleted,
		LastChangedAt: u.LastChangedAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func newUserListResponse(users []*types.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u)
	}
	return out
}
