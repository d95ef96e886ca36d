package service

import (
	"context"

	"estatehub/internal/audit"
	"estatehub/pkg/requestcontext"
	"estatehub/pkg/secrets"
)

var (
	defaultHash   = secrets.HashPassword
	defaultVerify = secrets.VerifyPassword
)

// emitAudit logs the event and forwards it to the publisher. Audit failures
// never fail the request.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	s.logger.InfoContext(ctx, string(event.Action),
		"log_type", "audit",
		"actor_id", event.ActorID,
		"target_id", event.TargetID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"action", string(event.Action),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}
