package constvars

type ContextKey string

const (
	ResourceAuth           = "auth"
	ResourceProfiles       = "profiles"
	ResourceAgencies       = "agencies"
	ResourceSwitchRequests = "switch-requests"
	ResourceDocuments      = "documents"
	ResourceESignatures    = "e-signatures"
	ResourceConversations  = "conversations"
	ResourceNotifications  = "notifications"
	ResourceAuditLogs      = "audit-logs"
	ResourceAdmin          = "admin"
	ResourceMembers        = "members"
)

const (
	AppPaginationUrlFormat    = "%s?page=%d&page_size=%d"
	AppDefaultPage            = 1
	AppDefaultPageSize        = 10
	AppMaxPageSize            = 100
	AppEnvironmentProduction  = "production"
	AppEnvironmentDevelopment = "development"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_CLIENT_IP_KEY            ContextKey = "client_ip"
)

// Platform roles stored on profiles.role
const (
	RolePatient = "patient"
	RoleAgency  = "agency"
	RoleAdmin   = "admin"
)

// Agency member roles stored on agency_members.role
const (
	MemberRoleOwner = "owner"
	MemberRoleAdmin = "admin"
	MemberRoleStaff = "staff"
)

const (
	SwitchRequestStatusSubmitted   = "submitted"
	SwitchRequestStatusUnderReview = "under_review"
	SwitchRequestStatusAccepted    = "accepted"
	SwitchRequestStatusDenied      = "denied"
	SwitchRequestStatusCompleted   = "completed"
	SwitchRequestStatusCancelled   = "cancelled"
)

const (
	DocumentTypeConsent   = "consent"
	DocumentTypeCarePlan  = "care_plan"
	DocumentTypeInsurance = "insurance"
	DocumentTypeIdentity  = "identity"
	DocumentTypeMedical   = "medical_record"
	DocumentTypeOther     = "other"
)

const (
	SignatureTypeTyped = "typed"
	SignatureTypeDrawn = "drawn"
	// SignatureChecksumVersion prefixes the canonical signing payload.
	SignatureChecksumVersion = "v1"
)

const (
	NotificationTypeSwitchRequestSubmitted = "switch_request_submitted"
	NotificationTypeSwitchRequestStatus    = "switch_request_status_changed"
	NotificationTypeSwitchRequestReminder  = "switch_request_reminder"
	NotificationTypeNewMessage             = "new_message"
	NotificationTypeDocumentUploaded       = "document_uploaded"
	NotificationTypeSignatureCaptured      = "signature_captured"
)

const (
	AuditActionCreate        = "create"
	AuditActionUpdate        = "update"
	AuditActionDelete        = "delete"
	AuditActionVerify        = "verify"
	AuditActionStatusChanged = "status_changed"
	AuditActionUpload        = "upload"
	AuditActionSign          = "sign"
	AuditActionLogin         = "login"
	AuditActionLogout        = "logout"
	AuditActionRegister      = "register"
	AuditActionMemberAdded   = "member_added"
	AuditActionMemberRemoved = "member_removed"
)

const (
	AuditEntityProfile       = "profile"
	AuditEntityAgency        = "agency"
	AuditEntitySwitchRequest = "switch_request"
	AuditEntityDocument      = "document"
	AuditEntityESignature    = "e_signature"
	AuditEntityAgencyMember  = "agency_member"
)

const (
	RedisSessionKeyPrefix          = "session:"
	RedisConversationChannelPrefix = "conversation:"
	RedisMessageLimiterGroup       = "MESSAGE_SEND"
	RedisReminderWorkerLockKey     = "reminder:worker:lock"
)

const (
	MinioSwitchRequestObjectPrefix = "switch-requests"
	MinioSignatureObjectPrefix     = "signatures"
)

const (
	RealtimeEventMessage = "message"
	RealtimeEventTyping  = "typing"
	RealtimeEventRead    = "read"
)

const (
	EmailTemplateNotification = "notification"
	DefaultMessagePageSize    = 50
	MaxMessagePageSize        = 100
	MaxDrawnSignatureBytes    = 512 * 1024
	DrawnSignatureDataPrefix  = "data:image/png;base64,"
)

const (
	MongoAuditLogCollection = "audit_logs"
	// AuditExportMaxRows caps a single spreadsheet export.
	AuditExportMaxRows   = 10000
	AuditExportSheetName = "Audit Logs"
	AuditExportFileName  = "audit-logs-%s.xlsx"
)
