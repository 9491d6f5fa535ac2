package responses

import "time"

type Result struct {
	ID               string                 `json:"id"`
	AssignmentID     string                 `json:"assignmentId"`
	FieldValues      map[string]interface{} `json:"fieldValues"`
	Notes            string                 `json:"notes,omitempty"`
	AttachmentObject string                 `json:"attachmentObject,omitempty"`
	EnteredBy        string                 `json:"enteredBy"`
	EnteredAt        time.Time              `json:"enteredAt"`
	// Non-fatal findings, e.g. values outside the normal range.
	Warnings []string `json:"warnings,omitempty"`
}
