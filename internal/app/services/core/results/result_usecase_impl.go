package results

import (
	"context"
	"encoding/base64"
	"labtrail-service/internal/app/config"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/dto/requests"
	"labtrail-service/internal/pkg/dto/responses"
	"labtrail-service/internal/pkg/exceptions"
	"labtrail-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

type ResultUsecase struct {
	ResultRepository       contracts.ResultRepository
	SpecimenRepository     contracts.SpecimenRepository
	AssignmentRepository   contracts.AssignmentRepository
	AccessRecordRepository contracts.AccessRecordRepository
	TestTypeRepository     contracts.TestTypeRepository
	ObjectStorage          contracts.ObjectStorage
	TxRunner               contracts.TxRunner
	AuditRecorder          contracts.AuditRecorder
	BucketName             string
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewResultUsecase(
	resultRepository contracts.ResultRepository,
	specimenRepository contracts.SpecimenRepository,
	assignmentRepository contracts.AssignmentRepository,
	accessRecordRepository contracts.AccessRecordRepository,
	testTypeRepository contracts.TestTypeRepository,
	objectStorage contracts.ObjectStorage,
	txRunner contracts.TxRunner,
	auditRecorder contracts.AuditRecorder,
	bucketName string,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ResultUsecase {
	return &ResultUsecase{
		ResultRepository:       resultRepository,
		SpecimenRepository:     specimenRepository,
		AssignmentRepository:   assignmentRepository,
		AccessRecordRepository: accessRecordRepository,
		TestTypeRepository:     testTypeRepository,
		ObjectStorage:          objectStorage,
		TxRunner:               txRunner,
		AuditRecorder:          auditRecorder,
		BucketName:             bucketName,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

func (uc *ResultUsecase) SubmitResult(ctx context.Context, session *models.Session, specimenID string, request *requests.SubmitResult) (*responses.Result, error) {
	specimen, err := uc.SpecimenRepository.FindByID(ctx, specimenID)
	if err != nil {
		return nil, err
	}
	if specimen == nil {
		return nil, exceptions.ErrSpecimenNotFound(nil)
	}

	if specimen.Status != models.SpecimenStatusInLab && specimen.Status != models.SpecimenStatusTested {
		return nil, exceptions.ErrInvalidStatusTransition(nil, string(specimen.Status), string(models.SpecimenStatusTested))
	}

	opened, err := uc.AccessRecordRepository.Exists(ctx, specimen.ID, session.UserID)
	if err != nil {
		return nil, err
	}
	if !opened {
		return nil, exceptions.ErrMustOpenBeforeSubmit(nil)
	}

	if specimen.AssignmentID == "" {
		return nil, exceptions.ErrAssignmentMissing(nil)
	}
	assignment, err := uc.AssignmentRepository.FindByID(ctx, specimen.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, exceptions.ErrAssignmentMissing(nil)
	}
	if assignment.AssignedTo != session.UserID {
		return nil, exceptions.ErrAssignmentOperatorMismatch(nil)
	}
	if assignment.Status != models.AssignmentStatusAssigned && assignment.Status != models.AssignmentStatusInProgress {
		return nil, exceptions.ErrAssignmentNotSubmittable(nil)
	}

	existing, err := uc.ResultRepository.FindByAssignmentID(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrResultAlreadyExists(nil)
	}

	testType, err := uc.TestTypeRepository.FindByID(ctx, assignment.TestTypeID)
	if err != nil {
		return nil, err
	}
	if testType == nil {
		return nil, exceptions.ErrTestTypeNotFound(nil)
	}

	violations, warnings := ValidateFieldValues(testType.FieldDefinitions, request.FieldValues)
	if len(violations) > 0 {
		return nil, exceptions.ErrResultFieldValidation(strings.Join(violations, "; "))
	}

	attachmentObject, err := uc.storeAttachment(ctx, specimen.AccessionCode, request)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &models.Result{
		AssignmentID:     assignment.ID,
		FieldValues:      request.FieldValues,
		Notes:            request.Notes,
		AttachmentObject: attachmentObject,
		EnteredBy:        session.UserID,
		EnteredAt:        now,
		TimeModel:        models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}

	err = uc.TxRunner.WithinTransaction(ctx, func(txCtx context.Context) error {
		resultID, txErr := uc.ResultRepository.CreateResult(txCtx, result)
		if txErr != nil {
			return txErr
		}
		result.ID = resultID

		from := specimen.Status
		if specimen.Status == models.SpecimenStatusInLab {
			specimen.Status = models.SpecimenStatusTested
		}
		if specimen.TestedAt == nil {
			specimen.TestedAt = &now
			specimen.TestedBy = session.UserID
		}
		// Conditional on the status the preconditions were checked against; a
		// concurrent transition aborts the submission instead of being
		// overwritten.
		moved, txErr := uc.SpecimenRepository.TransitionStatus(txCtx, specimen, from)
		if txErr != nil {
			return txErr
		}
		if !moved {
			return exceptions.ErrSpecimenStatusConflict(nil)
		}

		return uc.AssignmentRepository.MarkSubmitted(txCtx, assignment.ID, now)
	})
	if err != nil {
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, &models.AuditEvent{
		Event:         constvars.AuditEventResultSubmitted,
		SpecimenID:    specimen.ID,
		AccessionCode: specimen.AccessionCode,
		OperatorID:    session.UserID,
		Detail:        map[string]string{"assignmentId": assignment.ID},
		OccurredAt:    now,
	})

	uc.Log.Info("result submitted",
		zap.String(constvars.LoggingSpecimenIDKey, specimen.ID),
		zap.String(constvars.LoggingAssignmentIDKey, assignment.ID),
		zap.String(constvars.LoggingOperatorIDKey, session.UserID),
	)

	return &responses.Result{
		ID:               result.ID,
		AssignmentID:     result.AssignmentID,
		FieldValues:      result.FieldValues,
		Notes:            result.Notes,
		AttachmentObject: result.AttachmentObject,
		EnteredBy:        result.EnteredBy,
		EnteredAt:        result.EnteredAt,
		Warnings:         warnings,
	}, nil
}

func (uc *ResultUsecase) storeAttachment(ctx context.Context, accessionCode string, request *requests.SubmitResult) (string, error) {
	if request.Attachment == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(request.Attachment)
	if err != nil {
		return "", exceptions.ErrAttachmentDecode(err)
	}

	maxSize := uc.InternalConfig.App.AttachmentMaxSizeInMB * 1024 * 1024
	if len(data) > maxSize {
		return "", exceptions.ErrAttachmentTooLarge(uc.InternalConfig.App.AttachmentMaxSizeInMB)
	}

	objectName := utils.GenerateObjectName("result", accessionCode, request.AttachmentExtension)
	return uc.ObjectStorage.UploadBase64(ctx, data, uc.BucketName, objectName, request.AttachmentExtension)
}
