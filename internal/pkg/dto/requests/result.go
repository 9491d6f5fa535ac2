package requests

type SubmitResult struct {
	FieldValues map[string]interface{} `json:"fieldValues" validate:"required"`
	Notes       string                 `json:"notes,omitempty"`
	// Optional instrument report, base64 encoded.
	Attachment          string `json:"attachment,omitempty"`
	AttachmentExtension string `json:"attachmentExtension,omitempty" validate:"omitempty,oneof=.pdf .png .jpg .jpeg"`
}
