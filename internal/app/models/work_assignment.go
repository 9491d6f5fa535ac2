package models

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "PENDING"
	AssignmentStatusAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusSubmitted  AssignmentStatus = "SUBMITTED"
)

type WorkAssignment struct {
	ID          string           `bson:"_id,omitempty"`
	PatientID   string           `bson:"patientId"`
	TestTypeID  string           `bson:"testTypeId"`
	SpecimenID  string           `bson:"specimenId,omitempty"`
	AssignedTo  string           `bson:"assignedTo,omitempty"`
	Status      AssignmentStatus `bson:"status"`
	AssignedAt  *time.Time       `bson:"assignedAt,omitempty"`
	StartedAt   *time.Time       `bson:"startedAt,omitempty"`
	CompletedAt *time.Time       `bson:"completedAt,omitempty"`
	CreatedBy   string           `bson:"createdBy"`
	TimeModel   `bson:",inline"`
}
