package models

import "time"

// AccessRecord is append-only. The existence of a record for a
// (specimen, operator) pair is the authorization predicate for that
// operator's later reads and result submission on the specimen.
type AccessRecord struct {
	ID         string    `bson:"_id,omitempty"`
	SpecimenID string    `bson:"specimenId"`
	OperatorID string    `bson:"operatorId"`
	AccessedAt time.Time `bson:"accessedAt"`
}
