package contracts

import (
	"context"
	"labtrail-service/internal/app/models"
)

type SessionService interface {
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
}
