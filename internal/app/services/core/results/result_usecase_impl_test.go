package results

import (
	"context"
	"encoding/base64"
	"fmt"
	"labtrail-service/internal/app/config"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/dto/requests"
	"labtrail-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSpecimenRepository struct {
	specimens map[string]models.Specimen
	// Status served by FindByID instead of the stored one, to model a reader
	// holding a snapshot another writer has since moved past.
	staleStatus map[string]models.SpecimenStatus
}

func (s *stubSpecimenRepository) CreateSpecimen(context.Context, *models.Specimen) (string, error) {
	panic("not used")
}
func (s *stubSpecimenRepository) FindByID(_ context.Context, specimenID string) (*models.Specimen, error) {
	specimen, ok := s.specimens[specimenID]
	if !ok {
		return nil, nil
	}
	copied := specimen
	if status, stale := s.staleStatus[specimenID]; stale {
		copied.Status = status
	}
	return &copied, nil
}
func (s *stubSpecimenRepository) FindByAccessionCode(context.Context, string) (*models.Specimen, error) {
	panic("not used")
}
func (s *stubSpecimenRepository) FindByIDs(context.Context, []string) ([]models.Specimen, error) {
	panic("not used")
}
func (s *stubSpecimenRepository) FindByStatus(context.Context, models.SpecimenStatus) ([]models.Specimen, error) {
	panic("not used")
}
func (s *stubSpecimenRepository) FindAll(context.Context) ([]models.Specimen, error) {
	panic("not used")
}
func (s *stubSpecimenRepository) UpdateSpecimen(_ context.Context, specimen *models.Specimen) error {
	s.specimens[specimen.ID] = *specimen
	return nil
}
func (s *stubSpecimenRepository) TransitionStatus(_ context.Context, specimen *models.Specimen, from models.SpecimenStatus) (bool, error) {
	stored, ok := s.specimens[specimen.ID]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = specimen.Status
	stored.TestedAt = specimen.TestedAt
	stored.TestedBy = specimen.TestedBy
	s.specimens[specimen.ID] = stored
	return true, nil
}
func (s *stubSpecimenRepository) LatestAccessionCodeWithPrefix(context.Context, string) (string, error) {
	panic("not used")
}
func (s *stubSpecimenRepository) AccessionCodeExists(context.Context, string) (bool, error) {
	panic("not used")
}

type stubAssignmentRepository struct {
	assignments map[string]models.WorkAssignment
}

func (s *stubAssignmentRepository) CreateAssignment(context.Context, *models.WorkAssignment) (string, error) {
	panic("not used")
}
func (s *stubAssignmentRepository) FindByID(_ context.Context, assignmentID string) (*models.WorkAssignment, error) {
	assignment, ok := s.assignments[assignmentID]
	if !ok {
		return nil, nil
	}
	copied := assignment
	return &copied, nil
}
func (s *stubAssignmentRepository) FindOpenByPatientAndTestType(context.Context, string, string) (*models.WorkAssignment, error) {
	panic("not used")
}
func (s *stubAssignmentRepository) BindOperator(context.Context, string, string, time.Time) (bool, error) {
	panic("not used")
}
func (s *stubAssignmentRepository) MarkSubmitted(_ context.Context, assignmentID string, completedAt time.Time) error {
	assignment := s.assignments[assignmentID]
	assignment.Status = models.AssignmentStatusSubmitted
	assignment.CompletedAt = &completedAt
	s.assignments[assignmentID] = assignment
	return nil
}

type stubAccessRecordRepository struct {
	opened map[string]bool
}

func (s *stubAccessRecordRepository) CreateAccessRecord(context.Context, *models.AccessRecord) (string, error) {
	panic("not used")
}
func (s *stubAccessRecordRepository) Exists(_ context.Context, specimenID, operatorID string) (bool, error) {
	return s.opened[specimenID+"|"+operatorID], nil
}
func (s *stubAccessRecordRepository) FindByOperator(context.Context, string) ([]models.AccessRecord, error) {
	panic("not used")
}

type stubTestTypeRepository struct {
	testTypes map[string]models.TestType
}

func (s *stubTestTypeRepository) FindByID(_ context.Context, testTypeID string) (*models.TestType, error) {
	testType, ok := s.testTypes[testTypeID]
	if !ok {
		return nil, nil
	}
	copied := testType
	return &copied, nil
}
func (s *stubTestTypeRepository) FindByCode(context.Context, string) (*models.TestType, error) {
	panic("not used")
}

type stubResultRepository struct {
	results map[string]models.Result
	nextID  int
}

func (s *stubResultRepository) CreateResult(_ context.Context, result *models.Result) (string, error) {
	s.nextID++
	id := fmt.Sprintf("res-%d", s.nextID)
	stored := *result
	stored.ID = id
	s.results[stored.AssignmentID] = stored
	return id, nil
}
func (s *stubResultRepository) FindByAssignmentID(_ context.Context, assignmentID string) (*models.Result, error) {
	result, ok := s.results[assignmentID]
	if !ok {
		return nil, nil
	}
	copied := result
	return &copied, nil
}

type stubObjectStorage struct {
	uploads []string
}

func (s *stubObjectStorage) UploadBase64(_ context.Context, _ []byte, _, objectName, _ string) (string, error) {
	s.uploads = append(s.uploads, objectName)
	return objectName, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubAuditRecorder struct {
	events []models.AuditEvent
}

func (s *stubAuditRecorder) Record(_ context.Context, event *models.AuditEvent) {
	s.events = append(s.events, *event)
}

type resultFixture struct {
	specimenRepo   *stubSpecimenRepository
	assignmentRepo *stubAssignmentRepository
	accessRepo     *stubAccessRecordRepository
	resultRepo     *stubResultRepository
	storage        *stubObjectStorage
	audit          *stubAuditRecorder
	usecase        contracts.ResultUsecase
}

func floatPtrT(v float64) *float64 { return &v }

func newResultFixture() *resultFixture {
	fixture := &resultFixture{
		specimenRepo: &stubSpecimenRepository{specimens: map[string]models.Specimen{
			"spec-1": {
				ID:            "spec-1",
				PatientID:     "pat-1",
				AccessionCode: "BL-20260901-0001",
				Status:        models.SpecimenStatusInLab,
				AssignmentID:  "asg-1",
			},
		}},
		assignmentRepo: &stubAssignmentRepository{assignments: map[string]models.WorkAssignment{
			"asg-1": {
				ID:         "asg-1",
				PatientID:  "pat-1",
				TestTypeID: "tt-1",
				SpecimenID: "spec-1",
				AssignedTo: "op-1",
				Status:     models.AssignmentStatusAssigned,
			},
		}},
		accessRepo: &stubAccessRecordRepository{opened: map[string]bool{
			"spec-1|op-1": true,
		}},
		resultRepo: &stubResultRepository{results: make(map[string]models.Result)},
		storage:    &stubObjectStorage{},
		audit:      &stubAuditRecorder{},
	}

	testTypeRepo := &stubTestTypeRepository{testTypes: map[string]models.TestType{
		"tt-1": {
			ID:   "tt-1",
			Code: "blood-panel",
			FieldDefinitions: []models.FieldDefinition{
				{
					Name:      "hemoglobin",
					Kind:      models.FieldKindNumeric,
					Required:  true,
					Min:       floatPtrT(0),
					Max:       floatPtrT(30),
					NormalMin: floatPtrT(12),
					NormalMax: floatPtrT(17.5),
				},
			},
		},
	}}

	internalConfig := &config.InternalConfig{
		App: config.App{AttachmentMaxSizeInMB: 1},
	}

	fixture.usecase = NewResultUsecase(
		fixture.resultRepo,
		fixture.specimenRepo,
		fixture.assignmentRepo,
		fixture.accessRepo,
		testTypeRepo,
		fixture.storage,
		stubTxRunner{},
		fixture.audit,
		"result-attachments",
		internalConfig,
		zap.NewNop(),
	)
	return fixture
}

func operatorSession(userID string) *models.Session {
	return &models.Session{SessionID: "sess-" + userID, UserID: userID, Role: constvars.RoleTechnician}
}

func requireErrorKind(t *testing.T, err error, kind string) *exceptions.CustomError {
	t.Helper()
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok, "expected a CustomError, got %T", err)
	assert.Equal(t, kind, customErr.Kind)
	return customErr
}

func TestSubmitResult(t *testing.T) {
	t.Run("stores result, tests specimen and closes assignment", func(t *testing.T) {
		fixture := newResultFixture()

		response, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 14.2},
			Notes:       "looks fine",
		})
		require.NoError(t, err)
		assert.Equal(t, "asg-1", response.AssignmentID)
		assert.Empty(t, response.Warnings)

		specimen, _ := fixture.specimenRepo.FindByID(context.Background(), "spec-1")
		assert.Equal(t, models.SpecimenStatusTested, specimen.Status)
		require.NotNil(t, specimen.TestedAt)
		assert.Equal(t, "op-1", specimen.TestedBy)

		assignment, _ := fixture.assignmentRepo.FindByID(context.Background(), "asg-1")
		assert.Equal(t, models.AssignmentStatusSubmitted, assignment.Status)
		require.NotNil(t, assignment.CompletedAt)

		require.Len(t, fixture.audit.events, 1)
		assert.Equal(t, constvars.AuditEventResultSubmitted, fixture.audit.events[0].Event)
	})

	t.Run("out of normal range values warn without blocking", func(t *testing.T) {
		fixture := newResultFixture()

		response, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 9.5},
		})
		require.NoError(t, err)
		require.Len(t, response.Warnings, 1)
		assert.Contains(t, response.Warnings[0], "below the normal range")
	})

	t.Run("unknown specimen", func(t *testing.T) {
		fixture := newResultFixture()

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-missing", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 14.2},
		})
		requireErrorKind(t, err, exceptions.KindNotFound)
	})

	t.Run("collected specimen cannot receive results", func(t *testing.T) {
		fixture := newResultFixture()
		specimen := fixture.specimenRepo.specimens["spec-1"]
		specimen.Status = models.SpecimenStatusCollected
		fixture.specimenRepo.specimens["spec-1"] = specimen

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 14.2},
		})
		requireErrorKind(t, err, exceptions.KindInvalidState)
	})

	t.Run("must open before submitting", func(t *testing.T) {
		fixture := newResultFixture()
		fixture.accessRepo.opened = map[string]bool{}

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 14.2},
		})
		customErr := requireErrorKind(t, err, exceptions.KindForbidden)
		assert.Equal(t, constvars.ErrClientMustOpenBeforeSubmit, customErr.ClientMessage)
	})

	t.Run("only the assigned operator may submit", func(t *testing.T) {
		fixture := newResultFixture()
		fixture.accessRepo.opened["spec-1|op-2"] = true

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-2"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 14.2},
		})
		requireErrorKind(t, err, exceptions.KindForbidden)
	})

	t.Run("submitted assignment rejects another result", func(t *testing.T) {
		fixture := newResultFixture()
		assignment := fixture.assignmentRepo.assignments["asg-1"]
		assignment.Status = models.AssignmentStatusSubmitted
		fixture.assignmentRepo.assignments["asg-1"] = assignment

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 14.2},
		})
		requireErrorKind(t, err, exceptions.KindInvalidState)
	})

	t.Run("concurrent transition aborts the submission", func(t *testing.T) {
		fixture := newResultFixture()
		// The store moved to COMPLETED while this request still holds an
		// IN_LAB snapshot.
		specimen := fixture.specimenRepo.specimens["spec-1"]
		specimen.Status = models.SpecimenStatusCompleted
		fixture.specimenRepo.specimens["spec-1"] = specimen
		fixture.specimenRepo.staleStatus = map[string]models.SpecimenStatus{
			"spec-1": models.SpecimenStatusInLab,
		}

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 14.2},
		})
		requireErrorKind(t, err, exceptions.KindConflict)

		stored := fixture.specimenRepo.specimens["spec-1"]
		assert.Equal(t, models.SpecimenStatusCompleted, stored.Status, "concurrent COMPLETED status must survive")
		assignment, _ := fixture.assignmentRepo.FindByID(context.Background(), "asg-1")
		assert.Equal(t, models.AssignmentStatusAssigned, assignment.Status)
		assert.Empty(t, fixture.audit.events)
	})

	t.Run("duplicate result is a conflict", func(t *testing.T) {
		fixture := newResultFixture()
		fixture.resultRepo.results["asg-1"] = models.Result{ID: "res-0", AssignmentID: "asg-1"}

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"hemoglobin": 14.2},
		})
		requireErrorKind(t, err, exceptions.KindConflict)
	})

	t.Run("field violations are all reported", func(t *testing.T) {
		fixture := newResultFixture()

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues: map[string]interface{}{"glucose": 5.5},
		})
		customErr := requireErrorKind(t, err, exceptions.KindValidation)
		assert.Contains(t, customErr.ClientMessage, "glucose")
		assert.Contains(t, customErr.ClientMessage, "hemoglobin")
	})

	t.Run("attachment is decoded and stored", func(t *testing.T) {
		fixture := newResultFixture()

		encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 report"))
		response, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues:         map[string]interface{}{"hemoglobin": 14.2},
			Attachment:          encoded,
			AttachmentExtension: ".pdf",
		})
		require.NoError(t, err)
		require.Len(t, fixture.storage.uploads, 1)
		assert.Equal(t, fixture.storage.uploads[0], response.AttachmentObject)
		assert.Contains(t, response.AttachmentObject, "BL-20260901-0001")
	})

	t.Run("invalid base64 attachment rejected", func(t *testing.T) {
		fixture := newResultFixture()

		_, err := fixture.usecase.SubmitResult(context.Background(), operatorSession("op-1"), "spec-1", &requests.SubmitResult{
			FieldValues:         map[string]interface{}{"hemoglobin": 14.2},
			Attachment:          "not-base64!!",
			AttachmentExtension: ".pdf",
		})
		requireErrorKind(t, err, exceptions.KindValidation)
		assert.Empty(t, fixture.storage.uploads)
	})
}
