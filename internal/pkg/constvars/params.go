package constvars

const (
	URLParamProfileID       = "profile_id"
	URLParamAgencyID        = "agency_id"
	URLParamMemberID        = "member_id"
	URLParamSwitchRequestID = "switch_request_id"
	URLParamDocumentID      = "document_id"
	URLParamSignatureID     = "signature_id"
	URLParamConversationID  = "conversation_id"
	URLParamNotificationID  = "notification_id"
)

const (
	URLQueryParamPage       = "page"
	URLQueryParamPageSize   = "page_size"
	URLQueryParamName       = "name"
	URLQueryParamState      = "state"
	URLQueryParamService    = "service"
	URLQueryParamRole       = "role"
	URLQueryParamStatus     = "status"
	URLQueryParamUnread     = "unread"
	URLQueryParamBefore     = "before"
	URLQueryParamLimit      = "limit"
	URLQueryParamToken      = "token"
	URLQueryParamActorID    = "actor_id"
	URLQueryParamEntityType = "entity_type"
	URLQueryParamEntityID   = "entity_id"
	URLQueryParamAction     = "action"
)

const (
	FormFieldFile         = "file"
	FormFieldDocumentType = "document_type"
)
