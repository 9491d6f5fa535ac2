package requests

type RegisterSpecimen struct {
	PatientID string `json:"patientId" validate:"required"`
	// Optional; falls back to the configured default panel when empty.
	TestTypeID string `json:"testTypeId,omitempty"`
}

type OpenSpecimen struct {
	AccessionCode string `json:"accessionCode" validate:"required,accession_code"`
	Secret        string `json:"secret" validate:"required,len=6,numeric"`
}

type UpdateSpecimenStatus struct {
	Status string `json:"status" validate:"required"`
}
