package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"required_if":      "is required when %s",
	"required_without": "is required when %s is empty",
	"email":            "must be a valid email",
	"min":              "must be at least %s characters long",
	"max":              "maximum at %s characters long",
	"len":              "must be %s characters long",
	"oneof":            "must be one of [%s]",
	"uuid":             "must be a valid UUID",
	"password":         "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"phone_number":     "phone number must be in international format, e.g. +15551234567",
	"platform_role":    "must be either 'patient' or 'agency'",
	"member_role":      "must be one of [owner, admin, staff]",
	"switch_status":    "must be a valid switch request status",
	"document_type":    "must be a valid document type",
	"state_code":       "must be a two letter state code",
	"date_only":        "must be a date formatted as YYYY-MM-DD",
	"signature_name":   "must not contain '|' or control characters",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":              true,
	"max":              true,
	"len":              true,
	"oneof":            true,
	"required_if":      true,
	"required_without": true,
}

// Tags whose message already reads as a full sentence
var TagsWithStandaloneMessage = map[string]bool{
	"phone_number": true,
}
