package contracts

import (
	"context"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/dto/requests"
	"labtrail-service/internal/pkg/dto/responses"
)

type SpecimenRepository interface {
	CreateSpecimen(ctx context.Context, specimen *models.Specimen) (string, error)
	FindByID(ctx context.Context, specimenID string) (*models.Specimen, error)
	FindByAccessionCode(ctx context.Context, accessionCode string) (*models.Specimen, error)
	FindByIDs(ctx context.Context, specimenIDs []string) ([]models.Specimen, error)
	FindByStatus(ctx context.Context, status models.SpecimenStatus) ([]models.Specimen, error)
	FindAll(ctx context.Context) ([]models.Specimen, error)
	UpdateSpecimen(ctx context.Context, specimen *models.Specimen) error
	TransitionStatus(ctx context.Context, specimen *models.Specimen, from models.SpecimenStatus) (bool, error)
	LatestAccessionCodeWithPrefix(ctx context.Context, prefix string) (string, error)
	AccessionCodeExists(ctx context.Context, accessionCode string) (bool, error)
}

type SpecimenUsecase interface {
	RegisterSpecimen(ctx context.Context, session *models.Session, request *requests.RegisterSpecimen) (*responses.RegisterSpecimen, error)
	OpenSpecimen(ctx context.Context, session *models.Session, request *requests.OpenSpecimen) (*responses.Specimen, error)
	GetSpecimenByID(ctx context.Context, session *models.Session, specimenID string) (*responses.Specimen, error)
	ListSpecimens(ctx context.Context, status string) ([]responses.Specimen, error)
	ListOpenedBy(ctx context.Context, session *models.Session, status string) ([]responses.Specimen, error)
	RequestTransition(ctx context.Context, session *models.Session, specimenID, target string) (*responses.Specimen, error)
}
