// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package shifts

import (
	"time"

	"github.com/canonical/shift-service/internal/types"
)

type CreateShiftRequest struct {
	Title    string    `json:"title" validate:"required"`
	Location string    `json:"location" validate:"required"`
	StartAt  time.Time `json:"start_at" validate:"required"`
	EndAt    time.Time `json:"end_at" validate:"required,gtfield=StartAt"`
	Rate     float64   `json:"rate" validate:"gte=0"`
}

// TransitionRequest asks for one state change on one shift. ExpectedVersion
// is the version the client last saw, the update is rejected with a conflict
// when the row has moved on. IdempotencyKey, when set, makes retries of the
// same transition replay the stored outcome instead of re-executing.
type TransitionRequest struct {
	ShiftID         string           `json:"-"`
	State           types.ShiftState `json:"state" validate:"required"`
	AssigneeID      string           `json:"assignee_id"`
	ExpectedVersion int64            `json:"expected_version" validate:"required,gte=1"`
	IdempotencyKey  string           `json:"-"`
}

type ShiftResponse struct {
	ID            string           `json:"id"`
	TenantID      string           `json:"tenant_id"`
	Title         string           `json:"title"`
	Location      string           `json:"location"`
	StartAt       time.Time        `json:"start_at"`
	EndAt         time.Time        `json:"end_at"`
	Rate          float64          `json:"rate"`
	State         types.ShiftState `json:"state"`
	UserID        string           `json:"user_id,omitempty"`
	Version       int64            `json:"version"`
	Deleted       bool             `json:"deleted"`
	LastChangedAt int64            `json:"last_changed_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func newShiftResponse(s *types.Shift) *ShiftResponse {
	return &ShiftResponse{
		ID:            s.ID,
		TenantID:      s.TenantID,
		Title:         s.Title,
		Location:      s.Location,
		StartAt:       s.StartAt,
		EndAt:         s.EndAt,
		Rate:          s.Rate,
		State:         s.State,
		UserID:        s.UserID,
		Version:       s.Version,
		Deleted:       s.Deleted,
		LastChangedAt: s.LastChangedAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func newShiftListResponse(shifts []*types.Shift) []*ShiftResponse {
	out := make([]*ShiftResponse, len(shifts))
	for i, s := range shifts {
		out[i] = newShiftResponse(s)
	}
	return out
}
