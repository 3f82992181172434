// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/shift-service/internal/logging"
	"github.com/canonical/shift-service/internal/monitoring"
	"github.com/canonical/shift-service/internal/storage"
	"github.com/canonical/shift-service/internal/tracing"
	"github.com/canonical/shift-service/internal/types"
	"github.com/canonical/shift-service/pkg/authentication"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service: service,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/users", a.createUser)
	mux.Get("/api/v0/users", a.listUsers)
	mux.Get("/api/v0/users/changed", a.listChangedSince)
	mux.Get("/api/v0/users/{id}", a.getUser)
	mux.Patch("/api/v0/users/{id}", a.updateUser)
	mux.Delete("/api/v0/users/{id}", a.deleteUser)
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.service.CreateUser(r.Context(), actor, &req)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, newUserResponse(user))
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	user, err := a.service.GetUser(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	includeDeleted := r.URL.Query().Get("include_deleted") == "true"

	users, err := a.service.ListUsers(r.Context(), actor, includeDeleted)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newUserListResponse(users))
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = chi.URLParam(r, "id")

	user, err := a.service.UpdateUser(r.Context(), actor, &req)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	expectedVersion, err := strconv.ParseInt(r.URL.Query().Get("expected_version"), 10, 64)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "expected_version is required")
		return
	}

	if err := a.service.DeleteUser(r.Context(), actor, chi.URLParam(r, "id"), expectedVersion); err != nil {
		a.serviceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listChangedSince(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	since, err := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "since is required and must be a unix millisecond timestamp")
		return
	}

	users, err := a.service.ListChangedSince(r.Context(), actor, since)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newUserListResponse(users))
}

func (a *API) serviceError(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		a.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, types.ErrForbidden):
		a.writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, storage.ErrNotFound):
		a.writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, storage.ErrVersionConflict):
		a.writeError(w, http.StatusConflict, "version conflict")
	case errors.Is(err, storage.ErrDuplicateKey):
		a.writeError(w, http.StatusConflict, "email already in use")
	default:
		a.logger.Errorf("user request failed: %v", err)
		a.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}

func actorFromRequest(r *http.Request) (types.Actor, bool) {
	principal, ok := authentication.PrincipalFromContext(r.Context())
	if !ok {
		return types.Actor{}, false
	}
	return principal.Actor(), true
}
