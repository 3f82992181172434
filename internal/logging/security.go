// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// SecurityLogger emits audit events on a dedicated logger so they can be
// routed separately from application logs.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system_startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system_shutdown"))
}

func (s *SecurityLogger) AuthenticationFailed(subject string) {
	s.l.Warn("authentication failed",
		zap.String("event", "authentication_failed"),
		zap.String("subject", subject),
	)
}

func (s *SecurityLogger) PermissionDenied(actorID, action string) {
	s.l.Warn("permission denied",
		zap.String("event", "permission_denied"),
		zap.String("actor_id", actorID),
		zap.String("action", action),
	)
}
