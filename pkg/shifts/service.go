// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/shift-service/internal/lifecycle"
	"github.com/canonical/shift-service/internal/logging"
	"github.com/canonical/shift-service/internal/monitoring"
	"github.com/canonical/shift-service/internal/storage"
	"github.com/canonical/shift-service/internal/tracing"
	"github.com/canonical/shift-service/internal/types"
)

type Service struct {
	storage StorageInterface
	authz   AuthzInterface
	grace   time.Duration

	nowFunc func() time.Time

	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	authz AuthzInterface,
	grace time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		authz:    authz,
		grace:    grace,
		nowFunc:  time.Now,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *Service) CreateShift(ctx context.Context, actor types.Actor, req *CreateShiftRequest) (*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "shifts.Service.CreateShift")
	defer span.End()

	if !s.authz.CheckCreate(ctx, actor) {
		return nil, types.ErrForbidden
	}

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, types.NewValidationError(verrs[0].Field(), verrs[0].Tag())
		}
		return nil, err
	}

	now := s.nowFunc()
	shift := &types.Shift{
		TenantID:  actor.TenantID,
		Title:     req.Title,
		Location:  req.Location,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Rate:      req.Rate,
		State:     types.ShiftPending,
		CreatedAt: now,
		UpdatedAt: now,
		SyncMeta: types.SyncMeta{
			Version:       1,
			LastChangedAt: now.UnixMilli(),
		},
	}

	created, err := s.storage.CreateShift(ctx, shift)
	if err != nil {
		s.logger.Errorf("failed to create shift: %v", err)
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	return created, nil
}

func (s *Service) GetShift(ctx context.Context, actor types.Actor, id string) (*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "shifts.Service.GetShift")
	defer span.End()

	shift, err := s.storage.GetShift(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if !s.authz.CheckRead(ctx, actor, shift) {
		return nil, types.ErrForbidden
	}

	return shift, nil
}

func (s *Service) ListShifts(ctx context.Context, actor types.Actor, f storage.ShiftFilter) ([]*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "shifts.Service.ListShifts")
	defer span.End()

	if !actor.Role.Known() {
		return nil, types.ErrForbidden
	}

	return s.storage.ListShifts(ctx, actor.TenantID, f)
}

// Transition reads the shift, evaluates the state machine against it and
// persists the outcome under the client's expected version. With an
// idempotency key a replayed request returns the previously stored result
// without touching the state machine again.
func (s *Service) Transition(ctx context.Context, actor types.Actor, req *TransitionRequest) (*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "shifts.Service.Transition")
	defer span.End()

	// The replay branch below skips the state machine, so the role gate has
	// to come first or an unrecognized role could read through a stored key.
	if !actor.Role.Known() {
		return nil, types.ErrForbidden
	}

	if req.IdempotencyKey != "" {
		shiftID, err := s.storage.GetIdempotencyKey(ctx, actor.TenantID, req.IdempotencyKey)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if shiftID != "" {
			s.logger.Debugf("replaying transition for idempotency key %q", req.IdempotencyKey)
			return s.storage.GetShift(ctx, actor.TenantID, shiftID)
		}
	}

	shift, err := s.storage.GetShift(ctx, actor.TenantID, req.ShiftID)
	if err != nil {
		return nil, err
	}

	// Terminal states answer with a transition error, not a permission error,
	// so the order here matters.
	if shift.State.Terminal() && actor.Role != types.RoleAdmin {
		return nil, types.ErrInvalidTransition
	}

	if !s.authz.CheckTransition(ctx, actor, shift, shift.State, req.State) {
		return nil, types.ErrForbidden
	}

	action := lifecycle.Action{To: req.State, AssigneeID: req.AssigneeID}
	updated, err := lifecycle.Apply(*shift, action, actor, s.nowFunc(), s.grace)
	if err != nil {
		return nil, err
	}

	persisted, err := s.storage.UpdateShift(ctx, &updated, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if err := s.storage.PutIdempotencyKey(ctx, actor.TenantID, req.IdempotencyKey, persisted.ID); err != nil {
			s.logger.Errorf("failed to store idempotency key: %v", err)
		}
	}

	return persisted, nil
}

func (s *Service) DeleteShift(ctx context.Context, actor types.Actor, id string, expectedVersion int64) error {
	ctx, span := s.tracer.Start(ctx, "shifts.Service.DeleteShift")
	defer span.End()

	if !s.authz.CheckCreate(ctx, actor) {
		return types.ErrForbidden
	}

	return s.storage.DeleteShift(ctx, actor.TenantID, id, expectedVersion, s.nowFunc())
}

func (s *Service) ListChangedSince(ctx context.Context, actor types.Actor, since int64) ([]*types.Shift, error) {
	ctx, span := s.tracer.Start(ctx, "shifts.Service.ListChangedSince")
	defer span.End()

	if !actor.Role.Known() {
		return nil, types.ErrForbidden
	}

	return s.storage.ListShiftsChangedSince(ctx, actor.TenantID, since)
}
