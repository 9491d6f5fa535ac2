package specimens

import (
	"context"
	"fmt"
	"labtrail-service/internal/app/config"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/dto/requests"
	"labtrail-service/internal/pkg/dto/responses"
	"labtrail-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

const openLockKeyPrefix = "specimen-open-lock:"

type SpecimenUsecase struct {
	SpecimenRepository     contracts.SpecimenRepository
	AssignmentRepository   contracts.AssignmentRepository
	AccessRecordRepository contracts.AccessRecordRepository
	PatientRepository      contracts.PatientRepository
	TestTypeRepository     contracts.TestTypeRepository
	ProjectAccessChecker   contracts.ProjectAccessChecker
	SecretService          contracts.SecretService
	Allocator              *AccessionAllocator
	LockerService          contracts.LockerService
	TxRunner               contracts.TxRunner
	AuditRecorder          contracts.AuditRecorder
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewSpecimenUsecase(
	specimenRepository contracts.SpecimenRepository,
	assignmentRepository contracts.AssignmentRepository,
	accessRecordRepository contracts.AccessRecordRepository,
	patientRepository contracts.PatientRepository,
	testTypeRepository contracts.TestTypeRepository,
	projectAccessChecker contracts.ProjectAccessChecker,
	secretService contracts.SecretService,
	allocator *AccessionAllocator,
	lockerService contracts.LockerService,
	txRunner contracts.TxRunner,
	auditRecorder contracts.AuditRecorder,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SpecimenUsecase {
	return &SpecimenUsecase{
		SpecimenRepository:     specimenRepository,
		AssignmentRepository:   assignmentRepository,
		AccessRecordRepository: accessRecordRepository,
		PatientRepository:      patientRepository,
		TestTypeRepository:     testTypeRepository,
		ProjectAccessChecker:   projectAccessChecker,
		SecretService:          secretService,
		Allocator:              allocator,
		LockerService:          lockerService,
		TxRunner:               txRunner,
		AuditRecorder:          auditRecorder,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

func (uc *SpecimenUsecase) RegisterSpecimen(ctx context.Context, session *models.Session, request *requests.RegisterSpecimen) (*responses.RegisterSpecimen, error) {
	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	testType, err := uc.resolveTestType(ctx, request.TestTypeID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.AssignmentRepository.FindOpenByPatientAndTestType(ctx, patient.ID, testType.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrAssignmentAlreadyExists(nil)
	}

	secret, err := uc.SecretService.Issue()
	if err != nil {
		return nil, exceptions.ErrIssueSecret(err)
	}
	secretHash, err := uc.SecretService.Hash(secret)
	if err != nil {
		return nil, exceptions.ErrHashSecret(err)
	}

	now := time.Now()
	specimen, err := uc.insertWithFreshAccession(ctx, session, patient.ID, testType.ID, secretHash, now)
	if err != nil {
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, &models.AuditEvent{
		Event:         constvars.AuditEventSpecimenRegistered,
		SpecimenID:    specimen.ID,
		AccessionCode: specimen.AccessionCode,
		OperatorID:    session.UserID,
		OccurredAt:    now,
	})

	uc.Log.Info("specimen registered",
		zap.String(constvars.LoggingSpecimenIDKey, specimen.ID),
		zap.String(constvars.LoggingAccessionCodeKey, specimen.AccessionCode),
		zap.String(constvars.LoggingOperatorIDKey, session.UserID),
	)

	return &responses.RegisterSpecimen{
		ID:            specimen.ID,
		AccessionCode: specimen.AccessionCode,
		Secret:        secret,
		PatientID:     specimen.PatientID,
		CollectedAt:   specimen.CollectedAt,
	}, nil
}

// insertWithFreshAccession allocates a code and commits the specimen plus its
// work assignment. Losing the allocation race at insert time means another
// registration committed the same code first, so the pair is retried with a
// fresh code, bounded by the same attempt budget the allocator uses.
func (uc *SpecimenUsecase) insertWithFreshAccession(ctx context.Context, session *models.Session, patientID, testTypeID, secretHash string, now time.Time) (*models.Specimen, error) {
	for attempt := 0; attempt < uc.InternalConfig.App.AccessionMaxAttempts; attempt++ {
		accessionCode, err := uc.Allocator.Allocate(ctx)
		if err != nil {
			return nil, err
		}

		specimen := &models.Specimen{
			PatientID:     patientID,
			AccessionCode: accessionCode,
			SecretHash:    secretHash,
			Status:        models.SpecimenStatusCollected,
			CollectedAt:   now,
			CollectedBy:   session.UserID,
			TimeModel:     models.TimeModel{CreatedAt: now, UpdatedAt: now},
		}

		err = uc.TxRunner.WithinTransaction(ctx, func(txCtx context.Context) error {
			specimenID, txErr := uc.SpecimenRepository.CreateSpecimen(txCtx, specimen)
			if txErr != nil {
				return txErr
			}
			specimen.ID = specimenID

			assignment := &models.WorkAssignment{
				PatientID:  patientID,
				TestTypeID: testTypeID,
				SpecimenID: specimenID,
				Status:     models.AssignmentStatusPending,
				CreatedBy:  session.UserID,
				TimeModel:  models.TimeModel{CreatedAt: now, UpdatedAt: now},
			}
			assignmentID, txErr := uc.AssignmentRepository.CreateAssignment(txCtx, assignment)
			if txErr != nil {
				return txErr
			}

			specimen.AssignmentID = assignmentID
			return uc.SpecimenRepository.UpdateSpecimen(txCtx, specimen)
		})
		if err == nil {
			return specimen, nil
		}
		if !isAccessionTaken(err) {
			return nil, err
		}

		uc.Log.Debug("accession code committed concurrently, reallocating",
			zap.String(constvars.LoggingAccessionCodeKey, accessionCode),
		)
	}
	return nil, exceptions.ErrAccessionExhausted(nil)
}

func isAccessionTaken(err error) bool {
	customErr, ok := err.(*exceptions.CustomError)
	return ok && customErr.DevMessage == constvars.ErrDevAccessionCodeTaken
}

func (uc *SpecimenUsecase) resolveTestType(ctx context.Context, testTypeID string) (*models.TestType, error) {
	if testTypeID != "" {
		testType, err := uc.TestTypeRepository.FindByID(ctx, testTypeID)
		if err != nil {
			return nil, err
		}
		if testType == nil {
			return nil, exceptions.ErrTestTypeNotFound(nil)
		}
		return testType, nil
	}

	testType, err := uc.TestTypeRepository.FindByCode(ctx, uc.InternalConfig.App.DefaultTestTypeCode)
	if err != nil {
		return nil, err
	}
	if testType == nil {
		return nil, exceptions.ErrTestTypeNotFound(nil)
	}
	return testType, nil
}

func (uc *SpecimenUsecase) OpenSpecimen(ctx context.Context, session *models.Session, request *requests.OpenSpecimen) (*responses.Specimen, error) {
	lockKey := openLockKeyPrefix + request.AccessionCode
	lockValue, err := uc.acquireOpenLock(ctx, lockKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("failed to release open lock",
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	specimen, err := uc.SpecimenRepository.FindByAccessionCode(ctx, request.AccessionCode)
	if err != nil {
		return nil, err
	}
	if specimen == nil {
		return nil, exceptions.ErrAccessionUnknown(nil)
	}

	patient, err := uc.PatientRepository.FindByID(ctx, specimen.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	allowed, err := uc.ProjectAccessChecker.HasProjectAccess(ctx, session.UserID, patient.ProjectID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, exceptions.ErrProjectScopeDenied(nil)
	}

	if !uc.SecretService.Verify(request.Secret, specimen.SecretHash) {
		uc.Log.Warn("specimen open rejected on secret mismatch",
			zap.String(constvars.LoggingAccessionCodeKey, specimen.AccessionCode),
			zap.String(constvars.LoggingOperatorIDKey, session.UserID),
		)
		return nil, exceptions.ErrInvalidSecret(nil)
	}

	if specimen.Status != models.SpecimenStatusCollected && specimen.Status != models.SpecimenStatusInLab {
		return nil, exceptions.ErrSpecimenNotOpenable(nil)
	}

	now := time.Now()
	err = uc.TxRunner.WithinTransaction(ctx, func(txCtx context.Context) error {
		if specimen.Status == models.SpecimenStatusCollected {
			specimen.Status = models.SpecimenStatusInLab
			moved, txErr := uc.SpecimenRepository.TransitionStatus(txCtx, specimen, models.SpecimenStatusCollected)
			if txErr != nil {
				return txErr
			}
			if !moved {
				return exceptions.ErrSpecimenStatusConflict(nil)
			}
		}

		if specimen.AssignmentID != "" {
			bound, txErr := uc.AssignmentRepository.BindOperator(txCtx, specimen.AssignmentID, session.UserID, now)
			if txErr != nil {
				return txErr
			}
			if !bound {
				uc.Log.Debug("assignment already bound, keeping first opener",
					zap.String(constvars.LoggingAssignmentIDKey, specimen.AssignmentID),
					zap.String(constvars.LoggingOperatorIDKey, session.UserID),
				)
			}
		}

		record := &models.AccessRecord{
			SpecimenID: specimen.ID,
			OperatorID: session.UserID,
			AccessedAt: now,
		}
		_, txErr := uc.AccessRecordRepository.CreateAccessRecord(txCtx, record)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	uc.AuditRecorder.Record(ctx, &models.AuditEvent{
		Event:         constvars.AuditEventSpecimenOpened,
		SpecimenID:    specimen.ID,
		AccessionCode: specimen.AccessionCode,
		OperatorID:    session.UserID,
		OccurredAt:    now,
	})

	return buildSpecimenResponse(specimen), nil
}

// acquireOpenLock serializes concurrent opens on one accession code. A short
// bounded wait absorbs lock handover between two near-simultaneous openers
// instead of failing the second one outright.
func (uc *SpecimenUsecase) acquireOpenLock(ctx context.Context, lockKey string) (string, error) {
	expiration := time.Duration(uc.InternalConfig.App.OpenLockExpiryInSecond) * time.Second
	for attempt := 0; attempt < uc.InternalConfig.App.OpenLockMaxAttempts; attempt++ {
		acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, expiration)
		if err != nil {
			return "", err
		}
		if acquired {
			return lockValue, nil
		}

		select {
		case <-ctx.Done():
			return "", exceptions.ErrServerDeadlineExceeded(ctx.Err())
		case <-time.After(100 * time.Millisecond):
		}
	}
	return "", exceptions.ErrSpecimenLockBusy(nil)
}

func (uc *SpecimenUsecase) GetSpecimenByID(ctx context.Context, session *models.Session, specimenID string) (*responses.Specimen, error) {
	specimen, err := uc.SpecimenRepository.FindByID(ctx, specimenID)
	if err != nil {
		return nil, err
	}
	if specimen == nil {
		return nil, exceptions.ErrSpecimenNotFound(nil)
	}

	if err := uc.authorizeSpecimenRead(ctx, session, specimen); err != nil {
		return nil, err
	}
	return buildSpecimenResponse(specimen), nil
}

// authorizeSpecimenRead allows supervisors everywhere; technicians must have
// opened the specimen at least once.
func (uc *SpecimenUsecase) authorizeSpecimenRead(ctx context.Context, session *models.Session, specimen *models.Specimen) error {
	if session.Role == constvars.RoleSupervisor {
		return nil
	}

	opened, err := uc.AccessRecordRepository.Exists(ctx, specimen.ID, session.UserID)
	if err != nil {
		return err
	}
	if !opened {
		return exceptions.ErrNoAccessRecord(nil)
	}
	return nil
}

func (uc *SpecimenUsecase) ListSpecimens(ctx context.Context, status string) ([]responses.Specimen, error) {
	var (
		specimens []models.Specimen
		err       error
	)
	if status == "" {
		specimens, err = uc.SpecimenRepository.FindAll(ctx)
	} else {
		parsed := models.SpecimenStatus(status)
		if !parsed.Valid() {
			return nil, exceptions.ErrUnknownSpecimenStatus(nil)
		}
		specimens, err = uc.SpecimenRepository.FindByStatus(ctx, parsed)
	}
	if err != nil {
		return nil, err
	}
	return buildSpecimenListResponse(specimens), nil
}

func (uc *SpecimenUsecase) ListOpenedBy(ctx context.Context, session *models.Session, status string) ([]responses.Specimen, error) {
	var statusFilter models.SpecimenStatus
	if status != "" {
		statusFilter = models.SpecimenStatus(status)
		if !statusFilter.Valid() {
			return nil, exceptions.ErrUnknownSpecimenStatus(nil)
		}
	}

	records, err := uc.AccessRecordRepository.FindByOperator(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// A technician may have opened the same specimen several times; keep the
	// most recent access ordering while deduplicating.
	seen := make(map[string]bool, len(records))
	orderedIDs := make([]string, 0, len(records))
	for _, record := range records {
		if seen[record.SpecimenID] {
			continue
		}
		seen[record.SpecimenID] = true
		orderedIDs = append(orderedIDs, record.SpecimenID)
	}
	if len(orderedIDs) == 0 {
		return []responses.Specimen{}, nil
	}

	specimens, err := uc.SpecimenRepository.FindByIDs(ctx, orderedIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Specimen, len(specimens))
	for _, specimen := range specimens {
		byID[specimen.ID] = specimen
	}

	result := make([]responses.Specimen, 0, len(orderedIDs))
	for _, specimenID := range orderedIDs {
		specimen, ok := byID[specimenID]
		if !ok {
			continue
		}
		if statusFilter != "" && specimen.Status != statusFilter {
			continue
		}
		result = append(result, *buildSpecimenResponse(&specimen))
	}
	return result, nil
}

func (uc *SpecimenUsecase) RequestTransition(ctx context.Context, session *models.Session, specimenID, target string) (*responses.Specimen, error) {
	targetStatus := models.SpecimenStatus(target)
	if !targetStatus.Valid() {
		return nil, exceptions.ErrUnknownSpecimenStatus(nil)
	}

	specimen, err := uc.SpecimenRepository.FindByID(ctx, specimenID)
	if err != nil {
		return nil, err
	}
	if specimen == nil {
		return nil, exceptions.ErrSpecimenNotFound(nil)
	}

	if err := uc.authorizeSpecimenRead(ctx, session, specimen); err != nil {
		return nil, err
	}

	from := specimen.Status
	if !from.CanTransitionTo(targetStatus) {
		return nil, exceptions.ErrInvalidStatusTransition(nil, string(from), string(targetStatus))
	}

	now := time.Now()
	specimen.Status = targetStatus
	if targetStatus == models.SpecimenStatusTested && specimen.TestedAt == nil {
		specimen.TestedAt = &now
		specimen.TestedBy = session.UserID
	}
	// Conditional on the status this request validated against; a concurrent
	// writer moving the specimen first turns this into a conflict, never an
	// unvalidated edge.
	moved, err := uc.SpecimenRepository.TransitionStatus(ctx, specimen, from)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, exceptions.ErrSpecimenStatusConflict(nil)
	}

	uc.AuditRecorder.Record(ctx, &models.AuditEvent{
		Event:         constvars.AuditEventStatusChanged,
		SpecimenID:    specimen.ID,
		AccessionCode: specimen.AccessionCode,
		OperatorID:    session.UserID,
		Detail: map[string]string{
			"from": string(from),
			"to":   string(targetStatus),
		},
		OccurredAt: now,
	})

	uc.Log.Info(fmt.Sprintf("specimen status changed from %s to %s", from, targetStatus),
		zap.String(constvars.LoggingSpecimenIDKey, specimen.ID),
		zap.String(constvars.LoggingOperatorIDKey, session.UserID),
	)

	return buildSpecimenResponse(specimen), nil
}

func buildSpecimenResponse(specimen *models.Specimen) *responses.Specimen {
	return &responses.Specimen{
		ID:            specimen.ID,
		AccessionCode: specimen.AccessionCode,
		PatientID:     specimen.PatientID,
		Status:        string(specimen.Status),
		CollectedAt:   specimen.CollectedAt,
		CollectedBy:   specimen.CollectedBy,
		TestedAt:      specimen.TestedAt,
		TestedBy:      specimen.TestedBy,
		AssignmentID:  specimen.AssignmentID,
	}
}

func buildSpecimenListResponse(specimens []models.Specimen) []responses.Specimen {
	result := make([]responses.Specimen, 0, len(specimens))
	for _, specimen := range specimens {
		result = append(result, *buildSpecimenResponse(&specimen))
	}
	return result
}
