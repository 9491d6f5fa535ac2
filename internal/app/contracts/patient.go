package contracts

import (
	"context"
	"labtrail-service/internal/app/models"
)

type PatientRepository interface {
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
}

// ProjectAccessChecker is the external project-scope collaborator boundary.
type ProjectAccessChecker interface {
	HasProjectAccess(ctx context.Context, operatorID, projectID string) (bool, error)
}
