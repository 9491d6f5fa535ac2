package constvars

const (
	RegisterSpecimenSuccessMessage = "Successfully registered specimen"
	OpenSpecimenSuccessMessage     = "Successfully opened specimen"
	GetSpecimenSuccessMessage      = "Successfully fetched specimen"
	ListSpecimensSuccessMessage    = "Successfully fetched specimens"
	UpdateStatusSuccessMessage     = "Successfully updated specimen status"
	SubmitResultSuccessMessage     = "Successfully submitted result"
)
