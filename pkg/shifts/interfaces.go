// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package shifts

import (
	"context"
	"time"

	"github.com/canonical/shift-service/internal/storage"
	"github.com/canonical/shift-service/internal/types"
)

type ServiceInterface interface {
	CreateShift(ctx context.Context, actor types.Actor, req *CreateShiftRequest) (*types.Shift, error)
	GetShift(ctx context.Context, actor types.Actor, id string) (*types.Shift, error)
	ListShifts(ctx context.Context, actor types.Actor, f storage.ShiftFilter) ([]*types.Shift, error)
	Transition(ctx context.Context, actor types.Actor, req *TransitionRequest) (*types.Shift, error)
	DeleteShift(ctx context.Context, actor types.Actor, id string, expectedVersion int64) error
	ListChangedSince(ctx context.Context, actor types.Actor, since int64) ([]*types.Shift, error)
}

type StorageInterface interface {
	CreateShift(ctx context.Context, s *types.Shift) (*types.Shift, error)
	GetShift(ctx context.Context, tenantID, id string) (*types.Shift, error)
	ListShifts(ctx context.Context, tenantID string, f storage.ShiftFilter) ([]*types.Shift, error)
	UpdateShift(ctx context.Context, s *types.Shift, expectedVersion int64) (*types.Shift, error)
	DeleteShift(ctx context.Context, tenantID, id string, expectedVersion int64, now time.Time) error
	ListShiftsChangedSince(ctx context.Context, tenantID string, since int64) ([]*types.Shift, error)
	GetIdempotencyKey(ctx context.Context, tenantID, key string) (string, error)
	PutIdempotencyKey(ctx context.Context, tenantID, key, shiftID string) error
}

type AuthzInterface interface {
	CheckTransition(ctx context.Context, actor types.Actor, shift *types.Shift, from, to types.ShiftState) bool
	CheckRead(ctx context.Context, actor types.Actor, shift *types.Shift) bool
	CheckCreate(ctx context.Context, actor types.Actor) bool
}
