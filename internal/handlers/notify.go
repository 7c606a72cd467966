package handlers

import (
	"go.uber.org/zap"

	"github.com/mvogel/agentur-crm/internal/logging"
	"github.com/mvogel/agentur-crm/internal/models"
	"github.com/mvogel/agentur-crm/internal/services"
)

// notify creates a user-facing notification as a best-effort side
// effect of a mutation. Like activity records, a failure is logged
// and swallowed; it never fails the triggering request.
func notify(req models.CreateNotificationRequest) {
	if _, err := services.CreateNotification(req); err != nil {
		logging.Logger.Warn("Failed to create notification",
			zap.String("type", req.Type),
			zap.Error(err))
	}
}
