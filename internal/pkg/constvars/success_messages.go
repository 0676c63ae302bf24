package constvars

const (
	ResponseUnknown = "unknown"

	RegisterSuccess = "account registered successfully"
	LoginSuccess    = "successfully login"
	LogoutSuccess   = "successfully logout"

	GetProfileSuccess    = "get profile successfully"
	GetProfilesSuccess   = "get profiles successfully"
	UpdateProfileSuccess = "profile updated successfully"

	GetAgenciesSuccess  = "get agencies successfully"
	GetAgencySuccess    = "get agency successfully"
	CreateAgencySuccess = "agency created successfully"
	UpdateAgencySuccess = "agency updated successfully"
	DeleteAgencySuccess = "agency deleted successfully"
	VerifyAgencySuccess = "agency verified successfully"
	GetMembersSuccess   = "get agency members successfully"
	AddMemberSuccess    = "agency member added successfully"
	RemoveMemberSuccess = "agency member removed successfully"

	CreateSwitchRequestSuccess       = "switch request submitted successfully"
	GetSwitchRequestsSuccess         = "get switch requests successfully"
	GetSwitchRequestSuccess          = "get switch request successfully"
	UpdateSwitchRequestStatusSuccess = "switch request status updated successfully"
	GetSwitchRequestHistorySuccess   = "get switch request history successfully"

	UploadDocumentSuccess = "document uploaded successfully"
	GetDocumentsSuccess   = "get documents successfully"
	GetDocumentSuccess    = "get document successfully"
	DeleteDocumentSuccess = "document deleted successfully"

	CreateSignatureSuccess = "signature captured successfully"
	GetSignatureSuccess    = "get signature successfully"
	GetSignaturesSuccess   = "get signatures successfully"
	VerifySignatureSuccess = "signature verification finished"

	GetConversationsSuccess = "get conversations successfully"
	GetMessagesSuccess      = "get messages successfully"
	SendMessageSuccess      = "message sent successfully"
	MarkMessagesReadSuccess = "messages marked as read"

	GetNotificationsSuccess     = "get notifications successfully"
	MarkNotificationReadSuccess = "notification marked as read"
	MarkAllNotificationsSuccess = "all notifications marked as read"

	GetAuditLogsSuccess = "get audit logs successfully"

	HealthCheckOK       = "all dependencies are reachable"
	HealthCheckDegraded = "one or more dependencies are unreachable"
)
