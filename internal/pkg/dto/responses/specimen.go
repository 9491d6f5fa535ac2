package responses

import "time"

// RegisterSpecimen is the only place the plaintext secret ever leaves the
// service; it is not persisted and cannot be fetched again.
type RegisterSpecimen struct {
	ID            string    `json:"id"`
	AccessionCode string    `json:"accessionCode"`
	Secret        string    `json:"secret"`
	PatientID     string    `json:"patientId"`
	CollectedAt   time.Time `json:"collectedAt"`
}

type Specimen struct {
	ID            string     `json:"id"`
	AccessionCode string     `json:"accessionCode"`
	PatientID     string     `json:"patientId"`
	Status        string     `json:"status"`
	CollectedAt   time.Time  `json:"collectedAt"`
	CollectedBy   string     `json:"collectedBy"`
	TestedAt      *time.Time `json:"testedAt,omitempty"`
	TestedBy      string     `json:"testedBy,omitempty"`
	AssignmentID  string     `json:"assignmentId,omitempty"`
}
