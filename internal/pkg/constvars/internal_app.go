package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "requestID"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "isClientRequestID"
	CONTEXT_SESSION_KEY              ContextKey = "session"
)

// Operator roles known to this service. Role management itself lives in the
// identity collaborator; we only gate on the role carried by the session.
const (
	RoleTechnician = "technician"
	RoleSupervisor = "supervisor"
)

// Audit event names published to the audit queue.
const (
	AuditEventSpecimenRegistered = "specimen.registered"
	AuditEventSpecimenOpened     = "specimen.opened"
	AuditEventStatusChanged      = "specimen.status_changed"
	AuditEventResultSubmitted    = "result.submitted"
)
