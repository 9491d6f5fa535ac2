package models

import "time"

// Result is immutable once created; verification and amendment belong to an
// external collaborator, only the fields exist here.
type Result struct {
	ID               string                 `bson:"_id,omitempty"`
	AssignmentID     string                 `bson:"assignmentId"`
	FieldValues      map[string]interface{} `bson:"fieldValues"`
	Notes            string                 `bson:"notes,omitempty"`
	AttachmentObject string                 `bson:"attachmentObject,omitempty"`
	EnteredBy        string                 `bson:"enteredBy"`
	EnteredAt        time.Time              `bson:"enteredAt"`
	VerifiedBy       string                 `bson:"verifiedBy,omitempty"`
	VerifiedAt       *time.Time             `bson:"verifiedAt,omitempty"`
	TimeModel        `bson:",inline"`
}
