package contracts

import (
	"context"
	"labtrail-service/internal/app/models"
)

type TestTypeRepository interface {
	FindByID(ctx context.Context, testTypeID string) (*models.TestType, error)
	FindByCode(ctx context.Context, code string) (*models.TestType, error)
}
