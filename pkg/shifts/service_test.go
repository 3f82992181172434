// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package shifts

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/shift-service/internal/storage"
	"github.com/canonical/shift-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package shifts -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package shifts -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package shifts -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package shifts -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var testTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *MockStorageInterface, *MockAuthzInterface, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	mockStorage := NewMockStorageInterface(ctrl)
	mockAuthz := NewMockAuthzInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	service := NewService(mockStorage, mockAuthz, 15*time.Minute, mockTracer, mockMonitor, mockLogger)
	service.nowFunc = func() time.Time { return testTime }

	return service, mockStorage, mockAuthz, ctrl
}

func testShift(state types.ShiftState, version int64) *types.Shift {
	return &types.Shift{
		ID:       "shift-1",
		TenantID: "t1",
		Title:    "Night Watch",
		Location: "Warehouse 4",
		StartAt:  testTime.Add(time.Hour),
		EndAt:    testTime.Add(9 * time.Hour),
		Rate:     31.5,
		State:    state,
		UserID:   "g1",
		SyncMeta: types.SyncMeta{Version: version, LastChangedAt: testTime.UnixMilli()},
	}
}

func TestService_CreateShift(t *testing.T) {
	supervisor := types.Actor{ID: "s1", TenantID: "t1", Role: types.RoleSupervisor}

	testCases := []struct {
		name        string
		req         *CreateShiftRequest
		setupMocks  func(*MockStorageInterface, *MockAuthzInterface)
		expectedErr error
		checkResult func(*testing.T, *types.Shift)
	}{
		{
			name: "success",
			req: &CreateShiftRequest{
				Title:    "Night Watch",
				Location: "Warehouse 4",
				StartAt:  testTime.Add(time.Hour),
				EndAt:    testTime.Add(9 * time.Hour),
				Rate:     31.5,
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckCreate(gomock.Any(), supervisor).Return(true)
				mockStorage.EXPECT().CreateShift(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, s *types.Shift) (*types.Shift, error) {
						if s.State != types.ShiftPending {
							t.Errorf("expected new shift to be pending, got %s", s.State)
						}
						if s.Version != 1 {
							t.Errorf("expected version 1, got %d", s.Version)
						}
						if s.TenantID != "t1" {
							t.Errorf("expected tenant t1, got %s", s.TenantID)
						}
						return s, nil
					})
			},
			checkResult: func(t *testing.T, s *types.Shift) {
				if s.LastChangedAt != testTime.UnixMilli() {
					t.Errorf("expected last_changed_at %d, got %d", testTime.UnixMilli(), s.LastChangedAt)
				}
			},
		},
		{
			name: "forbidden",
			req:  &CreateShiftRequest{Title: "Night Watch", Location: "Warehouse 4", StartAt: testTime, EndAt: testTime.Add(time.Hour)},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckCreate(gomock.Any(), supervisor).Return(false)
			},
			expectedErr: types.ErrForbidden,
		},
		{
			name: "end before start",
			req: &CreateShiftRequest{
				Title:    "Night Watch",
				Location: "Warehouse 4",
				StartAt:  testTime.Add(9 * time.Hour),
				EndAt:    testTime.Add(time.Hour),
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckCreate(gomock.Any(), supervisor).Return(true)
			},
			expectedErr: &types.ValidationError{},
		},
		{
			name: "missing title",
			req:  &CreateShiftRequest{Location: "Warehouse 4", StartAt: testTime, EndAt: testTime.Add(time.Hour)},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckCreate(gomock.Any(), supervisor).Return(true)
			},
			expectedErr: &types.ValidationError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, mockStorage, mockAuthz, ctrl := newTestService(t)
			defer ctrl.Finish()

			tc.setupMocks(mockStorage, mockAuthz)

			shift, err := service.CreateShift(context.Background(), supervisor, tc.req)

			if tc.expectedErr != nil {
				var verr *types.ValidationError
				if _, isValidation := tc.expectedErr.(*types.ValidationError); isValidation {
					if !errors.As(err, &verr) {
						t.Errorf("expected ValidationError, got %v", err)
					}
				} else if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected %v, got %v", tc.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.checkResult != nil {
				tc.checkResult(t, shift)
			}
		})
	}
}

func TestService_GetShift(t *testing.T) {
	guard := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}

	testCases := []struct {
		name        string
		setupMocks  func(*MockStorageInterface, *MockAuthzInterface)
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				shift := testShift(types.ShiftAssigned, 2)
				mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(shift, nil)
				mockAuthz.EXPECT().CheckRead(gomock.Any(), guard, shift).Return(true)
			},
		},
		{
			name: "not found",
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(nil, storage.ErrNotFound)
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name: "read denied",
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				shift := testShift(types.ShiftAssigned, 2)
				mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(shift, nil)
				mockAuthz.EXPECT().CheckRead(gomock.Any(), guard, shift).Return(false)
			},
			expectedErr: types.ErrForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, mockStorage, mockAuthz, ctrl := newTestService(t)
			defer ctrl.Finish()

			tc.setupMocks(mockStorage, mockAuthz)

			_, err := service.GetShift(context.Background(), guard, "shift-1")
			if !errors.Is(err, tc.expectedErr) {
				t.Errorf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestService_Transition(t *testing.T) {
	supervisor := types.Actor{ID: "s1", TenantID: "t1", Role: types.RoleSupervisor}
	guard := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}

	testCases := []struct {
		name        string
		actor       types.Actor
		req         *TransitionRequest
		setupMocks  func(*MockStorageInterface, *MockAuthzInterface)
		expectedErr error
	}{
		{
			name:  "supervisor assigns pending shift",
			actor: supervisor,
			req:   &TransitionRequest{ShiftID: "shift-1", State: types.ShiftAssigned, AssigneeID: "g1", ExpectedVersion: 1},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				shift := testShift(types.ShiftPending, 1)
				shift.UserID = ""
				mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(shift, nil)
				mockAuthz.EXPECT().CheckTransition(gomock.Any(), supervisor, shift, types.ShiftPending, types.ShiftAssigned).Return(true)
				mockStorage.EXPECT().UpdateShift(gomock.Any(), gomock.Any(), int64(1)).DoAndReturn(
					func(_ context.Context, s *types.Shift, _ int64) (*types.Shift, error) {
						if s.State != types.ShiftAssigned {
							t.Errorf("expected state %s, got %s", types.ShiftAssigned, s.State)
						}
						if s.UserID != "g1" {
							t.Errorf("expected assignee g1, got %q", s.UserID)
						}
						if s.Version != 2 {
							t.Errorf("expected version 2, got %d", s.Version)
						}
						return s, nil
					})
			},
		},
		{
			name:  "stale version conflicts",
			actor: guard,
			req:   &TransitionRequest{ShiftID: "shift-1", State: types.ShiftInProgress, ExpectedVersion: 1},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				shift := testShift(types.ShiftAssigned, 2)
				shift.StartAt = testTime.Add(-time.Hour)
				mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(shift, nil)
				mockAuthz.EXPECT().CheckTransition(gomock.Any(), guard, shift, types.ShiftAssigned, types.ShiftInProgress).Return(true)
				mockStorage.EXPECT().UpdateShift(gomock.Any(), gomock.Any(), int64(1)).Return(nil, storage.ErrVersionConflict)
			},
			expectedErr: storage.ErrVersionConflict,
		},
		{
			name:  "transition denied",
			actor: guard,
			req:   &TransitionRequest{ShiftID: "shift-1", State: types.ShiftCancelled, ExpectedVersion: 2},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				shift := testShift(types.ShiftAssigned, 2)
				mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(shift, nil)
				mockAuthz.EXPECT().CheckTransition(gomock.Any(), guard, shift, types.ShiftAssigned, types.ShiftCancelled).Return(false)
			},
			expectedErr: types.ErrForbidden,
		},
		{
			name:  "terminal state rejects before permission check",
			actor: supervisor,
			req:   &TransitionRequest{ShiftID: "shift-1", State: types.ShiftInProgress, ExpectedVersion: 4},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				shift := testShift(types.ShiftCompleted, 4)
				mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(shift, nil)
			},
			expectedErr: types.ErrInvalidTransition,
		},
		{
			name:  "shift not found",
			actor: supervisor,
			req:   &TransitionRequest{ShiftID: "shift-1", State: types.ShiftAssigned, AssigneeID: "g1", ExpectedVersion: 1},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(nil, storage.ErrNotFound)
			},
			expectedErr: storage.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, mockStorage, mockAuthz, ctrl := newTestService(t)
			defer ctrl.Finish()

			tc.setupMocks(mockStorage, mockAuthz)

			_, err := service.Transition(context.Background(), tc.actor, tc.req)
			if !errors.Is(err, tc.expectedErr) {
				t.Errorf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestService_TransitionIdempotencyReplay(t *testing.T) {
	guard := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}

	service, mockStorage, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	stored := testShift(types.ShiftInProgress, 3)
	mockStorage.EXPECT().GetIdempotencyKey(gomock.Any(), "t1", "key-1").Return("shift-1", nil)
	mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(stored, nil)

	req := &TransitionRequest{ShiftID: "shift-1", State: types.ShiftInProgress, ExpectedVersion: 2, IdempotencyKey: "key-1"}
	shift, err := service.Transition(context.Background(), guard, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shift.Version != 3 {
		t.Errorf("expected the stored result to be replayed, got version %d", shift.Version)
	}
}

func TestService_TransitionUnrecognizedRoleDeniedReplay(t *testing.T) {
	siteManager := types.Actor{ID: "g1", TenantID: "t1", Role: types.Role("SITE_MANAGER")}

	service, _, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	// No storage expectations: the role gate has to stop the request before
	// the stored key is even looked up.
	req := &TransitionRequest{ShiftID: "shift-1", State: types.ShiftInProgress, ExpectedVersion: 2, IdempotencyKey: "key-1"}
	if _, err := service.Transition(context.Background(), siteManager, req); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestService_TransitionStoresIdempotencyKey(t *testing.T) {
	guard := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}

	service, mockStorage, mockAuthz, ctrl := newTestService(t)
	defer ctrl.Finish()

	shift := testShift(types.ShiftAssigned, 2)
	mockStorage.EXPECT().GetIdempotencyKey(gomock.Any(), "t1", "key-1").Return("", storage.ErrNotFound)
	mockStorage.EXPECT().GetShift(gomock.Any(), "t1", "shift-1").Return(shift, nil)
	mockAuthz.EXPECT().CheckTransition(gomock.Any(), guard, shift, types.ShiftAssigned, types.ShiftInProgress).Return(true)
	mockStorage.EXPECT().UpdateShift(gomock.Any(), gomock.Any(), int64(2)).DoAndReturn(
		func(_ context.Context, s *types.Shift, _ int64) (*types.Shift, error) {
			return s, nil
		})
	mockStorage.EXPECT().PutIdempotencyKey(gomock.Any(), "t1", "key-1", "shift-1").Return(nil)

	service.nowFunc = func() time.Time { return shift.StartAt }

	req := &TransitionRequest{ShiftID: "shift-1", State: types.ShiftInProgress, ExpectedVersion: 2, IdempotencyKey: "key-1"}
	if _, err := service.Transition(context.Background(), guard, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_DeleteShift(t *testing.T) {
	supervisor := types.Actor{ID: "s1", TenantID: "t1", Role: types.RoleSupervisor}
	guard := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}

	t.Run("success", func(t *testing.T) {
		service, mockStorage, mockAuthz, ctrl := newTestService(t)
		defer ctrl.Finish()

		mockAuthz.EXPECT().CheckCreate(gomock.Any(), supervisor).Return(true)
		mockStorage.EXPECT().DeleteShift(gomock.Any(), "t1", "shift-1", int64(2), testTime).Return(nil)

		if err := service.DeleteShift(context.Background(), supervisor, "shift-1", 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		service, _, mockAuthz, ctrl := newTestService(t)
		defer ctrl.Finish()

		mockAuthz.EXPECT().CheckCreate(gomock.Any(), guard).Return(false)

		if err := service.DeleteShift(context.Background(), guard, "shift-1", 2); !errors.Is(err, types.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestService_ListChangedSince(t *testing.T) {
	guard := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}

	service, mockStorage, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	changed := []*types.Shift{testShift(types.ShiftAssigned, 2)}
	mockStorage.EXPECT().ListShiftsChangedSince(gomock.Any(), "t1", int64(1000)).Return(changed, nil)

	shifts, err := service.ListChangedSince(context.Background(), guard, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shifts) != 1 {
		t.Errorf("expected 1 shift, got %d", len(shifts))
	}

	unknown := types.Actor{ID: "x1", TenantID: "t1", Role: types.Role("SITE_MANAGER")}
	if _, err := service.ListChangedSince(context.Background(), unknown, 1000); !errors.Is(err, types.ErrForbidden) {
		t.Errorf("expected ErrForbidden for unrecognized role, got %v", err)
	}
}
