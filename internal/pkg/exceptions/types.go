package exceptions

import (
	"fmt"
	"labtrail-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindValidation, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, KindInternal, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}

	// Session boundary
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpire)
	}
	ErrRoleNotAllowed = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, KindForbidden, constvars.ErrClientNotAuthorized, constvars.ErrDevRoleNotAllowed)
	}

	// Registration
	ErrPatientNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, KindNotFound, constvars.ErrClientPatientNotFound, constvars.ErrDevPatientNotFound)
	}
	ErrTestTypeNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, KindNotFound, constvars.ErrClientTestTypeNotFound, constvars.ErrDevTestTypeNotFound)
	}
	ErrAssignmentAlreadyExists = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, KindConflict, constvars.ErrClientAssignmentAlreadyExists, constvars.ErrDevAssignmentDuplicate)
	}
	ErrHashSecret = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToHashSecret)
	}
	ErrIssueSecret = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToIssueSecret)
	}
	ErrAccessionExhausted = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, KindExhausted, constvars.ErrClientAccessionExhausted, constvars.ErrDevAccessionExhausted)
	}
	ErrAccessionCodeTaken = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, KindConflict, constvars.ErrClientAccessionExhausted, constvars.ErrDevAccessionCodeTaken)
	}

	// Opening. Unknown code and wrong secret share one client message so the
	// response never reveals which of the two was wrong.
	ErrAccessionUnknown = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, KindNotFound, constvars.ErrClientAccessionOrSecretInvalid, constvars.ErrDevAccessionUnknown)
	}
	ErrInvalidSecret = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, KindForbidden, constvars.ErrClientAccessionOrSecretInvalid, constvars.ErrDevSecretMismatch)
	}
	ErrProjectScopeDenied = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, KindForbidden, constvars.ErrClientProjectScopeDenied, constvars.ErrDevProjectScopeDenied)
	}
	ErrSpecimenNotOpenable = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, KindInvalidState, constvars.ErrClientSpecimenNotOpenable, constvars.ErrDevSpecimenNotOpenable)
	}
	ErrSpecimenLockBusy = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, KindConflict, constvars.ErrClientSpecimenBusy, constvars.ErrDevSpecimenLockBusy)
	}

	// Ledger
	ErrSpecimenNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, KindNotFound, constvars.ErrClientSpecimenNotFound, constvars.ErrDevSpecimenNotFound)
	}
	ErrUnknownSpecimenStatus = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientUnknownSpecimenStatus, constvars.ErrDevUnknownSpecimenStatus)
	}
	ErrInvalidStatusTransition = func(err error, from, to string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, KindInvalidState, fmt.Sprintf(constvars.ErrClientInvalidStatusTransition, from, to), constvars.ErrDevInvalidStatusTransition)
	}
	ErrNoAccessRecord = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, KindForbidden, constvars.ErrClientNotAuthorized, constvars.ErrDevNoAccessRecord)
	}
	ErrSpecimenStatusConflict = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, KindConflict, constvars.ErrClientSpecimenModified, constvars.ErrDevSpecimenStatusStale)
	}

	// Result submission
	ErrMustOpenBeforeSubmit = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, KindForbidden, constvars.ErrClientMustOpenBeforeSubmit, constvars.ErrDevNoAccessRecord)
	}
	ErrAssignmentMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, KindInvalidState, constvars.ErrClientAssignmentMissing, constvars.ErrDevAssignmentMissing)
	}
	ErrAssignmentOperatorMismatch = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, KindForbidden, constvars.ErrClientAssignmentOperatorMismatch, constvars.ErrDevAssignmentMismatch)
	}
	ErrAssignmentNotSubmittable = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, KindInvalidState, constvars.ErrClientAssignmentNotSubmittable, constvars.ErrDevAssignmentNotSubmittable)
	}
	ErrResultAlreadyExists = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, KindConflict, constvars.ErrClientResultAlreadyExists, constvars.ErrDevResultDuplicate)
	}
	ErrResultFieldValidation = func(violations string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, KindValidation, violations, constvars.ErrDevResultFieldValidation)
	}
	ErrAttachmentDecode = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientAttachmentInvalid, constvars.ErrDevAttachmentDecode)
	}
	ErrAttachmentTooLarge = func(maxSizeInMB int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, KindValidation, fmt.Sprintf(constvars.ErrClientAttachmentTooLarge, maxSizeInMB), constvars.ErrDevAttachmentTooLarge)
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocument)
	}
	ErrMongoDBNotObjectID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBStringNotObjectID)
	}
	ErrMongoDBStartSession = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToStartSession)
	}
	ErrMongoDBTransaction = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToRunTransaction)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioPutObject, bucketName))
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitPublish, queueName))
	}
)
