// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package shifts

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
	mux.Post("/api/v0/shifts", a.createShift)
	mux.Get("/api/v0/shifts", a.listShifts)
	mux.Get("/api/v0/shifts/changed", a.listChangedSince)
	mux.Get("/api/v0/shifts/{id}", a.getShift)
	mux.Post("/api/v0/shifts/{id}/transition", a.transitionShift)
	mux.Delete("/api/v0/shifts/{id}", a.deleteShift)
}

func (a *API) createShift(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	shift, err := a.service.CreateShift(r.Context(), actor, &req)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, newShiftResponse(shift))
}

func (a *API) getShift(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	shift, err := a.service.GetShift(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newShiftResponse(shift))
}

func (a *API) listShifts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	f := storage.ShiftFilter{
		State:          types.ShiftState(r.URL.Query().Get("state")),
		UserID:         r.URL.Query().Get("user_id"),
		IncludeDeleted: r.URL.Query().Get("include_deleted") == "true",
	}

	shifts, err := a.service.ListShifts(r.Context(), actor, f)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newShiftListResponse(shifts))
}

func (a *API) transitionShift(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ShiftID = chi.URLParam(r, "id")
	req.IdempotencyKey = r.Header.Get("Idempotency-Key")

	shift, err := a.service.Transition(r.Context(), actor, &req)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newShiftResponse(shift))
}

func (a *API) deleteShift(w http.ResponseWriter, r *http.Request) {
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

	if err := a.service.DeleteShift(r.Context(), actor, chi.URLParam(r, "id"), expectedVersion); err != nil {
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

	shifts, err := a.service.ListChangedSince(r.Context(), actor, since)
	if err != nil {
		a.serviceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, newShiftListResponse(shifts))
}

func (a *API) serviceError(w http.ResponseWriter, err error) {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		a.writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, types.ErrForbidden):
		a.writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, storage.ErrNotFound):
		a.writeError(w, http.StatusNotFound, "shift not found")
	case errors.Is(err, storage.ErrVersionConflict):
		a.writeError(w, http.StatusConflict, "version conflict")
	case errors.Is(err, types.ErrInvalidTransition):
		a.writeError(w, http.StatusConflict, "invalid shift transition")
	default:
		a.logger.Errorf("shift request failed: %v", err)
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
