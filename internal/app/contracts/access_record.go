package contracts

import (
	"context"
	"labtrail-service/internal/app/models"
)

type AccessRecordRepository interface {
	CreateAccessRecord(ctx context.Context, record *models.AccessRecord) (string, error)
	Exists(ctx context.Context, specimenID, operatorID string) (bool, error)
	FindByOperator(ctx context.Context, operatorID string) ([]models.AccessRecord, error)
}
