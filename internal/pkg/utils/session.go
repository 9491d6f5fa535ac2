package utils

import (
	"context"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/exceptions"
)

// SessionFromContext pulls the session the auth middleware stored. A missing
// session on a protected route means the middleware chain is miswired, but we
// still answer with an auth error rather than panic.
func SessionFromContext(ctx context.Context) (*models.Session, error) {
	session, ok := ctx.Value(constvars.CONTEXT_SESSION_KEY).(*models.Session)
	if !ok || session == nil {
		return nil, exceptions.ErrTokenMissing(nil)
	}
	return session, nil
}
