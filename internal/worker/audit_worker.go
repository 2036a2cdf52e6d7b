package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/sharath2004-tech/odoo-sub001/internal/events"
)

// StartAuditWorker subscribes the access audit log to gateway events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	handler := func(_ context.Context, e events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", e.ID),
			zap.String("event", string(e.Type)),
			zap.String("method", e.Method),
			zap.String("path", e.Path),
			zap.Time("occurred_at", e.OccurredAt),
		}
		if e.AccountID != "" {
			fields = append(fields, zap.String("account_id", e.AccountID), zap.String("role", e.Role.String()))
		}
		if e.Code != "" {
			fields = append(fields, zap.String("code", e.Code))
		}
		if e.RequestID != "" {
			fields = append(fields, zap.String("request_id", e.RequestID))
		}

		if e.Type == events.EventAuthenticated {
			audit.Debug("access event", fields...)
		} else {
			audit.Info("access event", fields...)
		}
		return nil
	}

	dispatcher.Subscribe(events.EventAuthenticated, handler)
	dispatcher.Subscribe(events.EventAuthenticationFailed, handler)
	dispatcher.Subscribe(events.EventAccessDenied, handler)
}
