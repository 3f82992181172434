// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/canonical/shift-service/internal/authorization"
	"github.com/canonical/shift-service/internal/db"
	"github.com/canonical/shift-service/internal/logging"
	"github.com/canonical/shift-service/internal/monitoring"
	"github.com/canonical/shift-service/internal/storage"
	"github.com/canonical/shift-service/internal/tracing"
	"github.com/canonical/shift-service/pkg/authentication"
	"github.com/canonical/shift-service/pkg/metrics"
	"github.com/canonical/shift-service/pkg/shifts"
	"github.com/canonical/shift-service/pkg/status"
	"github.com/canonical/shift-service/pkg/users"
)

// Config carries the knobs the router needs beyond its dependencies.
type Config struct {
	GracePeriod           time.Duration
	AuthenticationEnabled bool
	TokenVerifier         authentication.TokenVerifierInterface
}

func NewRouter(
	cfg Config,
	store storage.StorageInterface,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	verifier := cfg.TokenVerifier
	if !cfg.AuthenticationEnabled || verifier == nil {
		verifier = authentication.NewNoopVerifier()
	}
	middlewares = append(
		middlewares,
		authentication.NewMiddleware(verifier, tracer, monitor, logger).Authenticate(),
		db.TransactionMiddleware(dbClient, logger),
	)

	router.Use(middlewares...)

	authorizer := authorization.NewAuthorizer(tracer, monitor, logger)

	shiftService := shifts.NewService(store, authorizer, cfg.GracePeriod, tracer, monitor, logger)
	userService := users.NewService(store, authorizer, tracer, monitor, logger)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	shifts.NewAPI(shiftService, tracer, monitor, logger).RegisterEndpoints(router)
	users.NewAPI(userService, tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

func middlewareCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		MaxAge:         300,
	})
}
