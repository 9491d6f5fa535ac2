package models

import "time"

type SpecimenStatus string

const (
	SpecimenStatusCollected SpecimenStatus = "COLLECTED"
	SpecimenStatusInLab     SpecimenStatus = "IN_LAB"
	SpecimenStatusTested    SpecimenStatus = "TESTED"
	SpecimenStatusCompleted SpecimenStatus = "COMPLETED"
)

// Allowed status transitions. IN_LAB -> COLLECTED is intentional: a
// technician may return a specimen to the collected pool, so consumers must
// not assume one-directional flow.
var specimenTransitions = map[SpecimenStatus][]SpecimenStatus{
	SpecimenStatusCollected: {SpecimenStatusInLab},
	SpecimenStatusInLab:     {SpecimenStatusTested, SpecimenStatusCollected},
	SpecimenStatusTested:    {SpecimenStatusCompleted},
	SpecimenStatusCompleted: {},
}

func (s SpecimenStatus) Valid() bool {
	_, ok := specimenTransitions[s]
	return ok
}

func (s SpecimenStatus) CanTransitionTo(target SpecimenStatus) bool {
	for _, allowed := range specimenTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

type Specimen struct {
	ID            string         `bson:"_id,omitempty"`
	PatientID     string         `bson:"patientId"`
	AccessionCode string         `bson:"accessionCode"`
	SecretHash    string         `bson:"secretHash"`
	Status        SpecimenStatus `bson:"status"`
	CollectedAt   time.Time      `bson:"collectedAt"`
	CollectedBy   string         `bson:"collectedBy"`
	TestedAt      *time.Time     `bson:"testedAt,omitempty"`
	TestedBy      string         `bson:"testedBy,omitempty"`
	AssignmentID  string         `bson:"assignmentId,omitempty"`
	TimeModel     `bson:",inline"`
}
