package constvars

const (
	LoggingRequestIDKey       = "request_id"
	LoggingDataKey            = "data"
	LoggingMethodKey          = "method"
	LoggingEndpointKey        = "endpoint"
	LoggingRemoteAddrKey      = "remote_addr"
	LoggingUserAgentKey       = "user_agent"
	LoggingQueryKey           = "query"
	LoggingStatusCodeKey      = "status_code"
	LoggingDurationKey        = "duration"
	LoggingSuccessKey         = "success"
	LoggingProfileIDKey       = "profile_id"
	LoggingRoleKey            = "role"
	LoggingEmailKey           = "email"
	LoggingAgencyIDKey        = "agency_id"
	LoggingMemberIDKey        = "member_id"
	LoggingSwitchRequestIDKey = "switch_request_id"
	LoggingFromStatusKey      = "from_status"
	LoggingToStatusKey        = "to_status"
	LoggingDocumentIDKey      = "document_id"
	LoggingSignatureIDKey     = "signature_id"
	LoggingConversationIDKey  = "conversation_id"
	LoggingMessageIDKey       = "message_id"
	LoggingNotificationIDKey  = "notification_id"
	LoggingStorageKey         = "storage_key"
	LoggingBucketNameKey      = "bucket_name"
	LoggingQueueNameKey       = "queue_name"
	LoggingRedisKey           = "redis_key"
	LoggingLockValueKey       = "lock_value"
	LoggingCountKey           = "count"
	LoggingPageKey            = "page"
	LoggingPageSizeKey        = "page_size"
	LoggingErrorTypeKey       = "error_type"
	LoggingOperationKey       = "operation"
	LoggingChannelKey         = "channel"
	LoggingCronSpecKey        = "cron_spec"
)
