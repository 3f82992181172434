// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/shift-service/internal/storage"
	"github.com/canonical/shift-service/internal/types"
	"github.com/canonical/shift-service/pkg/authentication"
)

var adminPrincipal = &authentication.Principal{UserID: "a1", TenantID: "t1", Role: types.RoleAdmin}

func newTestAPI(t *testing.T) (*chi.Mux, *MockServiceInterface, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	mockService := NewMockServiceInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	mux := chi.NewMux()
	NewAPI(mockService, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)

	return mux, mockService, ctrl
}

func authenticatedRequest(method, target string, body []byte, p *authentication.Principal) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(authentication.WithPrincipal(req.Context(), p))
}

func TestAPI_CreateUser(t *testing.T) {
	mux, mockService, ctrl := newTestAPI(t)
	defer ctrl.Finish()

	created := testUser(types.RoleSecurityGuard, 1)
	mockService.EXPECT().CreateUser(gomock.Any(), adminPrincipal.Actor(), gomock.Any()).Return(created, nil)

	body, _ := json.Marshal(CreateUserRequest{
		Email:     "guard@example.com",
		FirstName: "Dana",
		LastName:  "Reyes",
		Role:      types.RoleSecurityGuard,
	})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, authenticatedRequest(http.MethodPost, "/api/v0/users", body, adminPrincipal))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}

	var resp UserResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "user-1" || resp.Role != types.RoleSecurityGuard {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAPI_CreateUserDuplicateEmail(t *testing.T) {
	mux, mockService, ctrl := newTestAPI(t)
	defer ctrl.Finish()

	mockService.EXPECT().CreateUser(gomock.Any(), adminPrincipal.Actor(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)

	body, _ := json.Marshal(CreateUserRequest{Email: "guard@example.com", FirstName: "Dana", LastName: "Reyes", Role: types.RoleSecurityGuard})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, authenticatedRequest(http.MethodPost, "/api/v0/users", body, adminPrincipal))

	if rr.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

func TestAPI_UpdateUser(t *testing.T) {
	mux, mockService, ctrl := newTestAPI(t)
	defer ctrl.Finish()

	updated := testUser(types.RoleSupervisor, 4)
	mockService.EXPECT().UpdateUser(gomock.Any(), adminPrincipal.Actor(), gomock.Any()).Return(updated, nil)

	role := types.RoleSupervisor
	body, _ := json.Marshal(UpdateUserRequest{Role: &role, ExpectedVersion: 3})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, authenticatedRequest(http.MethodPatch, "/api/v0/users/user-1", body, adminPrincipal))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestAPI_GetUserNotFound(t *testing.T) {
	mux, mockService, ctrl := newTestAPI(t)
	defer ctrl.Finish()

	mockService.EXPECT().GetUser(gomock.Any(), adminPrincipal.Actor(), "missing").Return(nil, storage.ErrNotFound)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, authenticatedRequest(http.MethodGet, "/api/v0/users/missing", nil, adminPrincipal))

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestAPI_ListUsersUnauthenticated(t *testing.T) {
	mux, _, ctrl := newTestAPI(t)
	defer ctrl.Finish()

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/users", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestAPI_DeleteUser(t *testing.T) {
	mux, mockService, ctrl := newTestAPI(t)
	defer ctrl.Finish()

	mockService.EXPECT().DeleteUser(gomock.Any(), adminPrincipal.Actor(), "user-1", int64(2)).Return(nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, authenticatedRequest(http.MethodDelete, "/api/v0/users/user-1?expected_version=2", nil, adminPrincipal))

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
}

func TestAPI_ListChangedSince(t *testing.T) {
	mux, mockService, ctrl := newTestAPI(t)
	defer ctrl.Finish()

	mockService.EXPECT().ListChangedSince(gomock.Any(), adminPrincipal.Actor(), int64(1700000000000)).
		Return([]*types.User{testUser(types.RoleSecurityGuard, 2)}, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, authenticatedRequest(http.MethodGet, "/api/v0/users/changed?since=1700000000000", nil, adminPrincipal))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp []*UserResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Errorf("expected 1 user, got %d", len(resp))
	}
}
