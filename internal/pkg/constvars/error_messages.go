package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"min":            "must be at least %s characters long",
	"max":            "maximum at %s characters long",
	"len":            "must be %s characters long",
	"numeric":        "must be a number",
	"oneof":          "must be one of [%s]",
	"accession_code": "must match the accession code format",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process request"
	ErrClientSomethingWrongWithApplication = "something is wrong with the application, please contact admin"
	ErrClientServerLongRespond             = "server took too long to respond"
	ErrClientNotAuthorized                 = "you are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "you are not logged in, please log in"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientSpecimenNotFound              = "specimen not found"
	ErrClientTestTypeNotFound              = "test type not found"
	ErrClientAccessionOrSecretInvalid      = "invalid accession code or secret"
	ErrClientProjectScopeDenied            = "you do not have access to this patient's project"
	ErrClientSpecimenNotOpenable           = "specimen can no longer be opened"
	ErrClientSpecimenBusy                  = "specimen is being processed by another request, please retry"
	ErrClientSpecimenModified              = "specimen was changed by another request, please retry"
	ErrClientInvalidStatusTransition       = "specimen status cannot change from %s to %s"
	ErrClientUnknownSpecimenStatus         = "unknown specimen status"
	ErrClientMustOpenBeforeSubmit          = "must open specimen before submitting"
	ErrClientAssignmentMissing             = "specimen has no linked work assignment"
	ErrClientAssignmentOperatorMismatch    = "results can only be submitted by the assigned technician"
	ErrClientAssignmentNotSubmittable      = "work assignment does not accept results in its current status"
	ErrClientAssignmentAlreadyExists       = "an open work assignment already exists for this patient and test type"
	ErrClientResultAlreadyExists           = "a result has already been submitted for this assignment"
	ErrClientAccessionExhausted            = "could not allocate an accession code, please retry"
	ErrClientAttachmentInvalid             = "attachment is not valid base64 content"
	ErrClientAttachmentTooLarge            = "attachment exceeds the maximum allowed size of %d MB"
)

// Error messages for developers
const (
	ErrDevValidationFailed         = "Request validation failed"
	ErrDevInvalidInput             = "Invalid input"
	ErrDevCannotParseJSON          = "Cannot parse JSON request body"
	ErrDevCannotMarshalJSON        = "Cannot marshal value to JSON"
	ErrDevServerDeadlineExceeded   = "Server deadline exceeded while processing request"
	ErrDevAuthTokenMissing         = "Authorization token missing from request"
	ErrDevAuthTokenInvalidOrExpire = "Authorization token invalid or expired"
	ErrDevAuthSigningMethod        = "Unexpected JWT signing method"
	ErrDevAuthGenerateToken        = "Failed to sign session token"
	ErrDevRoleNotAllowed           = "Session role is not allowed for this endpoint"
	ErrDevFailedToHashSecret       = "Failed to hash specimen secret"
	ErrDevFailedToIssueSecret      = "Failed to draw random specimen secret"
	ErrDevPatientNotFound          = "Patient document not found"
	ErrDevSpecimenNotFound         = "Specimen document not found"
	ErrDevTestTypeNotFound         = "Test type document not found"
	ErrDevAccessionUnknown         = "No specimen found for accession code"
	ErrDevSecretMismatch           = "Specimen secret verification failed"
	ErrDevProjectScopeDenied       = "Operator is not a member of the patient's project"
	ErrDevSpecimenNotOpenable      = "Specimen status does not allow opening"
	ErrDevSpecimenLockBusy         = "Could not acquire specimen lock"
	ErrDevInvalidStatusTransition  = "Illegal specimen status transition"
	ErrDevUnknownSpecimenStatus    = "Status value is not part of the specimen status enumeration"
	ErrDevNoAccessRecord           = "No access record exists for operator and specimen"
	ErrDevAssignmentMissing        = "Specimen has no linked work assignment"
	ErrDevAssignmentMismatch       = "Assignment is bound to a different operator"
	ErrDevAssignmentNotSubmittable = "Assignment status does not accept result submission"
	ErrDevAssignmentDuplicate      = "Work assignment already exists for patient and test type"
	ErrDevResultDuplicate          = "Result already exists for assignment"
	ErrDevAccessionExhausted       = "Accession allocation retries exhausted"
	ErrDevAccessionCodeTaken       = "Accession code was committed by a concurrent registration"
	ErrDevSpecimenStatusStale      = "Specimen status changed since it was read"
	ErrDevResultFieldValidation    = "Result field values failed schema validation"
	ErrDevAttachmentDecode         = "Failed to decode base64 result attachment"
	ErrDevAttachmentTooLarge       = "Result attachment exceeds configured size limit"

	ErrDevDBFailedToFindDocument    = "Database failed to find document"
	ErrDevDBFailedToInsertDocument  = "Database failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "Database failed to update document"
	ErrDevDBFailedToIterateDocument = "Database failed to iterate documents"
	ErrDevDBFailedToStartSession    = "Database failed to start session"
	ErrDevDBFailedToRunTransaction  = "Database transaction failed"
	ErrDevDBStringNotObjectID       = "String is not a valid ObjectID"

	ErrDevRedisGetData   = "Redis failed to get data"
	ErrDevRedisSetData   = "Redis failed to set data"
	ErrDevRedisDelete    = "Redis failed to delete data"
	ErrDevRedisUnlock    = "Redis lock release failed"
	ErrDevMinioPutObject = "Minio failed to store object in bucket %s"
	ErrDevRabbitPublish  = "RabbitMQ failed to publish message to queue %s"
)
