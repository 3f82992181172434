// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/shift-service/internal/logging"
	"github.com/canonical/shift-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func TestAuthorizer_CheckTransition(t *testing.T) {
	shift := &types.Shift{TenantID: "t1", UserID: "g1"}

	testCases := []struct {
		name     string
		actor    types.Actor
		from, to types.ShiftState
		expected bool
	}{
		{
			name:     "supervisor assigns pending shift",
			actor:    types.Actor{ID: "s1", TenantID: "t1", Role: types.RoleSupervisor},
			from:     types.ShiftPending,
			to:       types.ShiftAssigned,
			expected: true,
		},
		{
			name:     "guard starts another guard's shift",
			actor:    types.Actor{ID: "g2", TenantID: "t1", Role: types.RoleSecurityGuard},
			from:     types.ShiftAssigned,
			to:       types.ShiftInProgress,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.CheckTransition").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			if !tc.expected {
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			}

			a := NewAuthorizer(mockTracer, mockMonitor, mockLogger)

			got := a.CheckTransition(context.Background(), tc.actor, shift, tc.from, tc.to)
			if got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestAuthorizer_CheckRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.CheckRead").
		Return(context.Background(), trace.SpanFromContext(context.Background())).Times(2)

	a := NewAuthorizer(mockTracer, mockMonitor, mockLogger)

	shift := &types.Shift{TenantID: "t1"}
	sameTenant := types.Actor{ID: "g1", TenantID: "t1", Role: types.RoleSecurityGuard}
	crossTenant := types.Actor{ID: "g1", TenantID: "t2", Role: types.RoleSecurityGuard}

	if !a.CheckRead(context.Background(), sameTenant, shift) {
		t.Error("same-tenant read must be allowed")
	}
	if a.CheckRead(context.Background(), crossTenant, shift) {
		t.Error("cross-tenant read must be denied")
	}
}
