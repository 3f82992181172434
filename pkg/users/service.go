// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/shift-service/internal/logging"
	"github.com/canonical/shift-service/internal/monitoring"
	"github.com/canonical/shift-service/internal/tracing"
	"github.com/canonical/shift-service/internal/types"
)

type Service struct {
	storage StorageInterface
	authz   AuthzInterface

	nowFunc func() time.Time

	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	authz AuthzInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		authz:    authz,
		nowFunc:  time.Now,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *Service) CreateUser(ctx context.Context, actor types.Actor, req *CreateUserRequest) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.CreateUser")
	defer span.End()

	if !s.authz.CheckProvisionUser(ctx, actor) {
		return nil, types.ErrForbidden
	}

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, types.NewValidationError(verrs[0].Field(), verrs[0].Tag())
		}
		return nil, err
	}
	if !req.Role.Known() {
		return nil, types.NewValidationError("role", "unknown role")
	}

	now := s.nowFunc()
	user := &types.User{
		TenantID:  actor.TenantID,
		Role:      req.Role,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
		SyncMeta: types.SyncMeta{
			Version:       1,
			LastChangedAt: now.UnixMilli(),
		},
	}

	created, err := s.storage.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (s *Service) GetUser(ctx context.Context, actor types.Actor, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.GetUser")
	defer span.End()

	if !actor.Role.Known() {
		return nil, types.ErrForbidden
	}

	return s.storage.GetUser(ctx, actor.TenantID, id)
}

func (s *Service) ListUsers(ctx context.Context, actor types.Actor, includeDeleted bool) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.ListUsers")
	defer span.End()

	if !actor.Role.Known() {
		return nil, types.ErrForbidden
	}

	return s.storage.ListUsers(ctx, actor.TenantID, includeDeleted)
}

func (s *Service) UpdateUser(ctx context.Context, actor types.Actor, req *UpdateUserRequest) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.UpdateUser")
	defer span.End()

	if !actor.Role.Known() {
		return nil, types.ErrForbidden
	}

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, types.NewValidationError(verrs[0].Field(), verrs[0].Tag())
		}
		return nil, err
	}

	user, err := s.storage.GetUser(ctx, actor.TenantID, req.UserID)
	if err != nil {
		return nil, err
	}

	// Self-service profile edits are fine, changing one's own or anyone
	// else's role is an admin operation.
	if actor.Role != types.RoleAdmin && actor.ID != user.ID {
		return nil, types.ErrForbidden
	}

	if req.Role != nil && *req.Role != user.Role {
		if !s.authz.CheckChangeRole(ctx, actor) {
			return nil, types.ErrForbidden
		}
		if !req.Role.Known() {
			return nil, types.NewValidationError("role", "unknown role")
		}
		user.Role = *req.Role
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	now := s.nowFunc()
	user.UpdatedAt = now
	user.LastChangedAt = now.UnixMilli()

	return s.storage.UpdateUser(ctx, user, req.ExpectedVersion)
}

func (s *Service) DeleteUser(ctx context.Context, actor types.Actor, id string, expectedVersion int64) error {
	ctx, span := s.tracer.Start(ctx, "users.Service.DeleteUser")
	defer span.End()

	if !s.authz.CheckProvisionUser(ctx, actor) {
		return types.ErrForbidden
	}

	return s.storage.DeleteUser(ctx, actor.TenantID, id, expectedVersion, s.nowFunc())
}

func (s *Service) ListChangedSince(ctx context.Context, actor types.Actor, since int64) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.ListChangedSince")
	defer span.End()

	if !actor.Role.Known() {
		return nil, types.ErrForbidden
	}

	return s.storage.ListUsersChangedSince(ctx, actor.TenantID, since)
}
