package contracts

import (
	"context"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/dto/requests"
	"labtrail-service/internal/pkg/dto/responses"
)

type ResultRepository interface {
	CreateResult(ctx context.Context, result *models.Result) (string, error)
	FindByAssignmentID(ctx context.Context, assignmentID string) (*models.Result, error)
}

type ResultUsecase interface {
	SubmitResult(ctx context.Context, session *models.Session, specimenID string, request *requests.SubmitResult) (*responses.Result, error)
}
