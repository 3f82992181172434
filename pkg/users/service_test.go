// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

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

//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

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

	service := NewService(mockStorage, mockAuthz, mockTracer, mockMonitor, mockLogger)
	service.nowFunc = func() time.Time { return testTime }

	return service, mockStorage, mockAuthz, ctrl
}

func testUser(role types.Role, version int64) *types.User {
	return &types.User{
		ID:        "user-1",
		TenantID:  "t1",
		Role:      role,
		Email:     "guard@example.com",
		FirstName: "Dana",
		LastName:  "Reyes",
		SyncMeta:  types.SyncMeta{Version: version, LastChangedAt: testTime.UnixMilli()},
	}
}

func TestService_CreateUser(t *testing.T) {
	admin := types.Actor{ID: "a1", TenantID: "t1", Role: types.RoleAdmin}

	testCases := []struct {
		name        string
		req         *CreateUserRequest
		setupMocks  func(*MockStorageInterface, *MockAuthzInterface)
		expectedErr error
	}{
		{
			name: "success",
			req: &CreateUserRequest{
				Email:     "guard@example.com",
				FirstName: "Dana",
				LastName:  "Reyes",
				Role:      types.RoleSecurityGuard,
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckProvisionUser(gomock.Any(), admin).Return(true)
				mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *types.User) (*types.User, error) {
						if u.Version != 1 {
							t.Errorf("expected version 1, got %d", u.Version)
						}
						if u.TenantID != "t1" {
							t.Errorf("expected tenant t1, got %s", u.TenantID)
						}
						return u, nil
					})
			},
		},
		{
			name: "forbidden",
			req:  &CreateUserRequest{Email: "guard@example.com", FirstName: "Dana", LastName: "Reyes", Role: types.RoleSecurityGuard},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckProvisionUser(gomock.Any(), admin).Return(false)
			},
			expectedErr: types.ErrForbidden,
		},
		{
			name: "unknown role",
			req:  &CreateUserRequest{Email: "guard@example.com", FirstName: "Dana", LastName: "Reyes", Role: types.Role("SITE_MANAGER")},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckProvisionUser(gomock.Any(), admin).Return(true)
			},
			expectedErr: &types.ValidationError{},
		},
		{
			name: "invalid email",
			req:  &CreateUserRequest{Email: "not-an-email", FirstName: "Dana", LastName: "Reyes", Role: types.RoleSecurityGuard},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckProvisionUser(gomock.Any(), admin).Return(true)
			},
			expectedErr: &types.ValidationError{},
		},
		{
			name: "duplicate email",
			req:  &CreateUserRequest{Email: "guard@example.com", FirstName: "Dana", LastName: "Reyes", Role: types.RoleSecurityGuard},
			setupMocks: func(mockStorage *MockStorageInterface, mockAuthz *MockAuthzInterface) {
				mockAuthz.EXPECT().CheckProvisionUser(gomock.Any(), admin).Return(true)
				mockStorage.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			expectedErr: storage.ErrDuplicateKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, mockStorage, mockAuthz, ctrl := newTestService(t)
			defer ctrl.Finish()

			tc.setupMocks(mockStorage, mockAuthz)

			_, err := service.CreateUser(context.Background(), admin, tc.req)

			if tc.expectedErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *types.ValidationError
			if _, isValidation := tc.expectedErr.(*types.ValidationError); isValidation {
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			} else if !errors.Is(err, tc.expectedErr) {
				t.Errorf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestService_UpdateUser(t *testing.T) {
	admin := types.Actor{ID: "a1", TenantID: "t1", Role: types.RoleAdmin}
	guard := types.Actor{ID: "user-1", TenantID: "t1", Role: types.RoleSecurityGuard}
	otherGuard := types.Actor{ID: "user-2", TenantID: "t1", Role: types.RoleSecurityGuard}

	supervisorRole := types.RoleSupervisor
	phone := "+1 415 555 0100"

	t.Run("admin changes role", func(t *testing.T) {
		service, mockStorage, mockAuthz, ctrl := newTestService(t)
		defer ctrl.Finish()

		user := testUser(types.RoleSecurityGuard, 3)
		mockStorage.EXPECT().GetUser(gomock.Any(), "t1", "user-1").Return(user, nil)
		mockAuthz.EXPECT().CheckChangeRole(gomock.Any(), admin).Return(true)
		mockStorage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), int64(3)).DoAndReturn(
			func(_ context.Context, u *types.User, _ int64) (*types.User, error) {
				if u.Role != types.RoleSupervisor {
					t.Errorf("expected role %s, got %s", types.RoleSupervisor, u.Role)
				}
				if u.LastChangedAt != testTime.UnixMilli() {
					t.Errorf("expected last_changed_at to advance")
				}
				return u, nil
			})

		req := &UpdateUserRequest{UserID: "user-1", Role: &supervisorRole, ExpectedVersion: 3}
		if _, err := service.UpdateUser(context.Background(), admin, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("guard edits own profile", func(t *testing.T) {
		service, mockStorage, _, ctrl := newTestService(t)
		defer ctrl.Finish()

		user := testUser(types.RoleSecurityGuard, 3)
		mockStorage.EXPECT().GetUser(gomock.Any(), "t1", "user-1").Return(user, nil)
		mockStorage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), int64(3)).DoAndReturn(
			func(_ context.Context, u *types.User, _ int64) (*types.User, error) {
				if u.Phone != phone {
					t.Errorf("expected phone %q, got %q", phone, u.Phone)
				}
				return u, nil
			})

		req := &UpdateUserRequest{UserID: "user-1", Phone: &phone, ExpectedVersion: 3}
		if _, err := service.UpdateUser(context.Background(), guard, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unrecognized role cannot edit own profile", func(t *testing.T) {
		service, _, _, ctrl := newTestService(t)
		defer ctrl.Finish()

		siteManager := types.Actor{ID: "user-1", TenantID: "t1", Role: types.Role("SITE_MANAGER")}

		req := &UpdateUserRequest{UserID: "user-1", Phone: &phone, ExpectedVersion: 3}
		if _, err := service.UpdateUser(context.Background(), siteManager, req); !errors.Is(err, types.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("guard cannot edit someone else", func(t *testing.T) {
		service, mockStorage, _, ctrl := newTestService(t)
		defer ctrl.Finish()

		user := testUser(types.RoleSecurityGuard, 3)
		mockStorage.EXPECT().GetUser(gomock.Any(), "t1", "user-1").Return(user, nil)

		req := &UpdateUserRequest{UserID: "user-1", Phone: &phone, ExpectedVersion: 3}
		if _, err := service.UpdateUser(context.Background(), otherGuard, req); !errors.Is(err, types.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("guard cannot change own role", func(t *testing.T) {
		service, mockStorage, mockAuthz, ctrl := newTestService(t)
		defer ctrl.Finish()

		user := testUser(types.RoleSecurityGuard, 3)
		mockStorage.EXPECT().GetUser(gomock.Any(), "t1", "user-1").Return(user, nil)
		mockAuthz.EXPECT().CheckChangeRole(gomock.Any(), guard).Return(false)

		req := &UpdateUserRequest{UserID: "user-1", Role: &supervisorRole, ExpectedVersion: 3}
		if _, err := service.UpdateUser(context.Background(), guard, req); !errors.Is(err, types.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		service, mockStorage, _, ctrl := newTestService(t)
		defer ctrl.Finish()

		user := testUser(types.RoleSecurityGuard, 4)
		mockStorage.EXPECT().GetUser(gomock.Any(), "t1", "user-1").Return(user, nil)
		mockStorage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), int64(3)).Return(nil, storage.ErrVersionConflict)

		req := &UpdateUserRequest{UserID: "user-1", Phone: &phone, ExpectedVersion: 3}
		if _, err := service.UpdateUser(context.Background(), guard, req); !errors.Is(err, storage.ErrVersionConflict) {
			t.Errorf("expected ErrVersionConflict, got %v", err)
		}
	})
}

func TestService_DeleteUser(t *testing.T) {
	admin := types.Actor{ID: "a1", TenantID: "t1", Role: types.RoleAdmin}
	guard := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}

	t.Run("success", func(t *testing.T) {
		service, mockStorage, mockAuthz, ctrl := newTestService(t)
		defer ctrl.Finish()

		mockAuthz.EXPECT().CheckProvisionUser(gomock.Any(), admin).Return(true)
		mockStorage.EXPECT().DeleteUser(gomock.Any(), "t1", "user-1", int64(2), testTime).Return(nil)

		if err := service.DeleteUser(context.Background(), admin, "user-1", 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		service, _, mockAuthz, ctrl := newTestService(t)
		defer ctrl.Finish()

		mockAuthz.EXPECT().CheckProvisionUser(gomock.Any(), guard).Return(false)

		if err := service.DeleteUser(context.Background(), guard, "user-1", 2); !errors.Is(err, types.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestService_ListChangedSince(t *testing.T) {
	guard := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}

	service, mockStorage, _, ctrl := newTestService(t)
	defer ctrl.Finish()

	mockStorage.EXPECT().ListUsersChangedSince(gomock.Any(), "t1", int64(1000)).
		Return([]*types.User{testUser(types.RoleSecurityGuard, 2)}, nil)

	users, err := service.ListChangedSince(context.Background(), guard, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}
