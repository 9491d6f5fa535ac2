package contracts

import (
	"context"
	"labtrail-service/internal/app/models"
	"time"
)

type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, assignment *models.WorkAssignment) (string, error)
	FindByID(ctx context.Context, assignmentID string) (*models.WorkAssignment, error)
	FindOpenByPatientAndTestType(ctx context.Context, patientID, testTypeID string) (*models.WorkAssignment, error)
	// BindOperator sets the operator on an unassigned assignment using an
	// atomic conditional update. It reports false without error when the
	// assignment was already bound, which makes first-opener-wins idempotent
	// under retry.
	BindOperator(ctx context.Context, assignmentID, operatorID string, assignedAt time.Time) (bool, error)
	MarkSubmitted(ctx context.Context, assignmentID string, completedAt time.Time) error
}
