package specimens

import (
	"context"
	"fmt"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/exceptions"
	"strings"
	"sync"
	"time"
)

type fakeSpecimenRepository struct {
	mu        sync.Mutex
	specimens map[string]models.Specimen
	taken     map[string]bool
	// Codes a concurrent registration commits between the allocator's
	// existence check and the insert. Hitting one fails the insert once and
	// marks the code taken afterwards.
	insertConflicts map[string]bool
	// Per-specimen status served by FindByID instead of the stored one, to
	// model a reader holding a snapshot another writer has since moved past.
	staleStatus map[string]models.SpecimenStatus
	nextID      int
}

func newFakeSpecimenRepository() *fakeSpecimenRepository {
	return &fakeSpecimenRepository{
		specimens:       make(map[string]models.Specimen),
		taken:           make(map[string]bool),
		insertConflicts: make(map[string]bool),
		staleStatus:     make(map[string]models.SpecimenStatus),
	}
}

func (f *fakeSpecimenRepository) CreateSpecimen(_ context.Context, specimen *models.Specimen) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.insertConflicts[specimen.AccessionCode] {
		delete(f.insertConflicts, specimen.AccessionCode)
		f.taken[specimen.AccessionCode] = true
		return "", exceptions.ErrAccessionCodeTaken(nil)
	}
	if f.taken[specimen.AccessionCode] {
		return "", exceptions.ErrAccessionCodeTaken(nil)
	}
	for _, stored := range f.specimens {
		if stored.AccessionCode == specimen.AccessionCode {
			return "", exceptions.ErrAccessionCodeTaken(nil)
		}
	}

	f.nextID++
	id := fmt.Sprintf("spec-%d", f.nextID)
	stored := *specimen
	stored.ID = id
	f.specimens[id] = stored
	return id, nil
}

func (f *fakeSpecimenRepository) FindByID(_ context.Context, specimenID string) (*models.Specimen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	specimen, ok := f.specimens[specimenID]
	if !ok {
		return nil, nil
	}
	copied := specimen
	if status, stale := f.staleStatus[specimenID]; stale {
		copied.Status = status
	}
	return &copied, nil
}

func (f *fakeSpecimenRepository) FindByAccessionCode(_ context.Context, accessionCode string) (*models.Specimen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, specimen := range f.specimens {
		if specimen.AccessionCode == accessionCode {
			copied := specimen
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSpecimenRepository) FindByIDs(_ context.Context, specimenIDs []string) ([]models.Specimen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Specimen
	for _, specimenID := range specimenIDs {
		if specimen, ok := f.specimens[specimenID]; ok {
			result = append(result, specimen)
		}
	}
	return result, nil
}

func (f *fakeSpecimenRepository) FindByStatus(_ context.Context, status models.SpecimenStatus) ([]models.Specimen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Specimen
	for _, specimen := range f.specimens {
		if specimen.Status == status {
			result = append(result, specimen)
		}
	}
	return result, nil
}

func (f *fakeSpecimenRepository) FindAll(_ context.Context) ([]models.Specimen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Specimen
	for _, specimen := range f.specimens {
		result = append(result, specimen)
	}
	return result, nil
}

func (f *fakeSpecimenRepository) UpdateSpecimen(_ context.Context, specimen *models.Specimen) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.specimens[specimen.ID] = *specimen
	return nil
}

func (f *fakeSpecimenRepository) TransitionStatus(_ context.Context, specimen *models.Specimen, from models.SpecimenStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.specimens[specimen.ID]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = specimen.Status
	stored.TestedAt = specimen.TestedAt
	stored.TestedBy = specimen.TestedBy
	f.specimens[specimen.ID] = stored
	return true, nil
}

// LatestAccessionCodeWithPrefix deliberately ignores the taken set so tests
// can model codes the sort-based lookup would miss.
func (f *fakeSpecimenRepository) LatestAccessionCodeWithPrefix(_ context.Context, prefix string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	latest := ""
	for _, specimen := range f.specimens {
		if strings.HasPrefix(specimen.AccessionCode, prefix) && specimen.AccessionCode > latest {
			latest = specimen.AccessionCode
		}
	}
	return latest, nil
}

func (f *fakeSpecimenRepository) AccessionCodeExists(_ context.Context, accessionCode string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.taken[accessionCode] {
		return true, nil
	}
	for _, specimen := range f.specimens {
		if specimen.AccessionCode == accessionCode {
			return true, nil
		}
	}
	return false, nil
}

type fakeAssignmentRepository struct {
	assignments map[string]models.WorkAssignment
	nextID      int
}

func newFakeAssignmentRepository() *fakeAssignmentRepository {
	return &fakeAssignmentRepository{assignments: make(map[string]models.WorkAssignment)}
}

func (f *fakeAssignmentRepository) CreateAssignment(_ context.Context, assignment *models.WorkAssignment) (string, error) {
	f.nextID++
	id := fmt.Sprintf("asg-%d", f.nextID)
	stored := *assignment
	stored.ID = id
	f.assignments[id] = stored
	return id, nil
}

func (f *fakeAssignmentRepository) FindByID(_ context.Context, assignmentID string) (*models.WorkAssignment, error) {
	assignment, ok := f.assignments[assignmentID]
	if !ok {
		return nil, nil
	}
	copied := assignment
	return &copied, nil
}

func (f *fakeAssignmentRepository) FindOpenByPatientAndTestType(_ context.Context, patientID, testTypeID string) (*models.WorkAssignment, error) {
	for _, assignment := range f.assignments {
		if assignment.PatientID == patientID && assignment.TestTypeID == testTypeID && assignment.Status != models.AssignmentStatusSubmitted {
			copied := assignment
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAssignmentRepository) BindOperator(_ context.Context, assignmentID, operatorID string, assignedAt time.Time) (bool, error) {
	assignment, ok := f.assignments[assignmentID]
	if !ok || assignment.AssignedTo != "" {
		return false, nil
	}
	assignment.AssignedTo = operatorID
	assignment.Status = models.AssignmentStatusAssigned
	assignment.AssignedAt = &assignedAt
	f.assignments[assignmentID] = assignment
	return true, nil
}

func (f *fakeAssignmentRepository) MarkSubmitted(_ context.Context, assignmentID string, completedAt time.Time) error {
	assignment := f.assignments[assignmentID]
	assignment.Status = models.AssignmentStatusSubmitted
	assignment.CompletedAt = &completedAt
	f.assignments[assignmentID] = assignment
	return nil
}

type fakeAccessRecordRepository struct {
	records []models.AccessRecord
	nextID  int
}

func newFakeAccessRecordRepository() *fakeAccessRecordRepository {
	return &fakeAccessRecordRepository{}
}

func (f *fakeAccessRecordRepository) CreateAccessRecord(_ context.Context, record *models.AccessRecord) (string, error) {
	f.nextID++
	stored := *record
	stored.ID = fmt.Sprintf("acc-%d", f.nextID)
	f.records = append(f.records, stored)
	return stored.ID, nil
}

func (f *fakeAccessRecordRepository) Exists(_ context.Context, specimenID, operatorID string) (bool, error) {
	for _, record := range f.records {
		if record.SpecimenID == specimenID && record.OperatorID == operatorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccessRecordRepository) FindByOperator(_ context.Context, operatorID string) ([]models.AccessRecord, error) {
	var result []models.AccessRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].OperatorID == operatorID {
			result = append(result, f.records[i])
		}
	}
	return result, nil
}

type fakePatientRepository struct {
	patients map[string]models.Patient
}

func (f *fakePatientRepository) FindByID(_ context.Context, patientID string) (*models.Patient, error) {
	patient, ok := f.patients[patientID]
	if !ok {
		return nil, nil
	}
	copied := patient
	return &copied, nil
}

type fakeTestTypeRepository struct {
	testTypes map[string]models.TestType
}

func (f *fakeTestTypeRepository) FindByID(_ context.Context, testTypeID string) (*models.TestType, error) {
	testType, ok := f.testTypes[testTypeID]
	if !ok {
		return nil, nil
	}
	copied := testType
	return &copied, nil
}

func (f *fakeTestTypeRepository) FindByCode(_ context.Context, code string) (*models.TestType, error) {
	for _, testType := range f.testTypes {
		if testType.Code == code {
			copied := testType
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeProjectAccessChecker struct {
	allowed map[string]bool
}

func (f *fakeProjectAccessChecker) HasProjectAccess(_ context.Context, operatorID, projectID string) (bool, error) {
	return f.allowed[operatorID+"|"+projectID], nil
}

type fakeSecretService struct {
	issued string
}

func (f *fakeSecretService) Issue() (string, error) {
	return f.issued, nil
}

func (f *fakeSecretService) Hash(secret string) (string, error) {
	return "hashed:" + secret, nil
}

func (f *fakeSecretService) Verify(secret, hash string) bool {
	return hash == "hashed:"+secret
}

type fakeLockerService struct {
	busy    bool
	unlocks int
}

func (f *fakeLockerService) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	if f.busy {
		return false, "", nil
	}
	return true, "lock-value", nil
}

func (f *fakeLockerService) Unlock(_ context.Context, _, _ string) error {
	f.unlocks++
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAuditRecorder struct {
	events []models.AuditEvent
}

func (f *fakeAuditRecorder) Record(_ context.Context, event *models.AuditEvent) {
	f.events = append(f.events, *event)
}
