package models

import "time"

// AuditEvent is the structured notification handed to the external audit
// recorder. Delivery is fire-and-forget from this core's perspective.
type AuditEvent struct {
	Event         string            `json:"event"`
	SpecimenID    string            `json:"specimenId,omitempty"`
	AccessionCode string            `json:"accessionCode,omitempty"`
	OperatorID    string            `json:"operatorId"`
	Detail        map[string]string `json:"detail,omitempty"`
	OccurredAt    time.Time         `json:"occurredAt"`
}
