package contracts

import (
	"context"
	"labtrail-service/internal/app/models"
)

// AuditRecorder hands structured events to the external audit collaborator.
// Recording never fails the surrounding operation; delivery errors are logged
// and dropped.
type AuditRecorder interface {
	Record(ctx context.Context, event *models.AuditEvent)
}
