package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientResourceNotFound              = "the requested data was not found"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientAgencyNotAvailable            = "the selected agency is not accepting switch requests"
	ErrClientSameAgency                    = "the new agency must be different from your current agency"
	ErrClientOpenSwitchRequestExists       = "you already have an open switch request for this agency"
	ErrClientInvalidStatusTransition       = "this status change is not allowed"
	ErrClientStatusConflict                = "the request was changed by someone else, please refresh and try again"
	ErrClientDecisionNoteRequired          = "a note is required when denying a request"
	ErrClientSwitchRequestClosed           = "this switch request is already closed"
	ErrClientConversationClosed            = "this conversation is closed"
	ErrClientFileTooLarge                  = "file exceeds the maximum allowed size of %d MB"
	ErrClientUnsupportedFileType           = "only PDF, PNG and JPEG files are accepted"
	ErrClientDocumentAlreadySigned         = "signed documents cannot be deleted"
	ErrClientAlreadySigned                 = "you have already signed this"
	ErrClientConsentRequired               = "consent is required to sign"
	ErrClientInvalidSignature              = "signature data is invalid"
	ErrClientLicenseNotVerified            = "the agency license could not be verified"
	ErrClientMemberAlreadyExists           = "this account is already a member of the agency"
	ErrClientMemberProfileNotAgency        = "only agency accounts can be added as members"
	ErrClientLastOwner                     = "an agency must keep at least one owner"
)

// Error messages for developers
const (
	ErrDevInvalidInput                  = "invalid input"
	ErrDevValidationFailed              = "validation failed"
	ErrDevCannotParseJSON               = "cannot parse JSON"
	ErrDevCannotMarshalJSON             = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm      = "cannot parse multipart form"
	ErrDevURLParamIDValidationFailed    = "URL param %s validation failed"
	ErrDevServerDeadlineExceeded        = "server deadline exceeded"
	ErrDevServerProcess                 = "server failed to process the request"
	ErrDevFailedToHashPassword          = "failed to hash password"
	ErrDevInvalidCredentials            = "invalid credentials"
	ErrDevEmailAlreadyExists            = "email already exists"
	ErrDevAuthTokenMissing              = "authorization token missing"
	ErrDevAuthTokenInvalid              = "authorization token invalid"
	ErrDevAuthSigningMethod             = "unexpected signing method"
	ErrDevAuthGenerateToken             = "failed to generate token"
	ErrDevAuthSessionNotFound           = "session not found or expired"
	ErrDevForbidden                     = "role %s is not allowed to %s %s"
	ErrDevRowAccessDenied               = "profile %s cannot access %s %s"
	ErrDevNotFound                      = "%s %s not found"
	ErrDevTooManyRequests               = "rate limit exceeded for %s"
	ErrDevAgencyNotAvailable            = "agency %s is not verified or not accepting patients"
	ErrDevSameAgency                    = "current and new agency are both %s"
	ErrDevOpenSwitchRequestExists       = "patient %s already has an open switch request for agency %s"
	ErrDevInvalidStatusTransition       = "transition %s -> %s is not allowed for %s"
	ErrDevStatusConflict                = "switch request %s is no longer in status %s"
	ErrDevDecisionNoteRequired          = "decision note required for status %s"
	ErrDevSwitchRequestClosed           = "switch request %s is in terminal status %s"
	ErrDevConversationClosed            = "conversation %s belongs to a cancelled switch request"
	ErrDevFileTooLarge                  = "file size %d exceeds limit %d"
	ErrDevUnsupportedFileType           = "unsupported content type %s"
	ErrDevDocumentAlreadySigned         = "document %s is referenced by e-signatures"
	ErrDevAlreadySigned                 = "signer %s already signed %s"
	ErrDevConsentRequired               = "consent flag missing"
	ErrDevInvalidSignature              = "invalid signature payload"
	ErrDevLicenseNotVerified            = "license %s/%s not active in registry"
	ErrDevLicenseRegistryRequest        = "license registry request failed"
	ErrDevMemberAlreadyExists           = "profile %s already member of agency %s"
	ErrDevMemberProfileNotAgency        = "profile %s has role %s"
	ErrDevLastOwner                     = "agency %s would be left without owner"
	ErrDevDBFailedToFindData            = "failed to find data in database"
	ErrDevDBFailedToInsertData          = "failed to insert data into database"
	ErrDevDBFailedToUpdateData          = "failed to update data in database"
	ErrDevDBFailedToDeleteData          = "failed to delete data in database"
	ErrDevDBFailedToIterateDataset      = "failed to iterate dataset"
	ErrDevDBFailedToBeginTransaction    = "failed to begin database transaction"
	ErrDevDBFailedToCommitTransaction   = "failed to commit database transaction"
	ErrDevMongoDBFailedToInsertDocument = "failed to insert document into mongo"
	ErrDevMongoDBFailedToFindDocument   = "failed to find documents in mongo"
	ErrDevMinioFailedToCreateObject     = "failed to create object in bucket %s"
	ErrDevMinioFailedToPresignObject    = "failed to presign object in bucket %s"
	ErrDevMinioFailedToRemoveObject     = "failed to remove object from bucket %s"
	ErrDevRedisGetData                  = "failed to get data from redis"
	ErrDevRedisSetData                  = "failed to set data to redis"
	ErrDevRedisDeleteData               = "failed to delete data from redis"
	ErrDevRedisIncrementValue           = "failed to increment value in redis"
	ErrDevRedisPublish                  = "failed to publish to redis channel"
	ErrDevRedisUnlock                   = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage        = "failed to publish message to queue %s"
	ErrDevSpreadsheetBuild              = "failed to build spreadsheet"
)
