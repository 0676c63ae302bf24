package utils

import (
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"carelink-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	validate *validator.Validate

	reSpecialChar = regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar)
	reUppercase   = regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase)
	rePhoneNumber = regexp.MustCompile(constvars.RegexPhoneNumberGeneral)
	reStateCode   = regexp.MustCompile(constvars.RegexUSStateCode)
	reDateOnly    = regexp.MustCompile(constvars.RegexDateYYYYMMDD)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("platform_role", validatePlatformRole)
	validate.RegisterValidation("member_role", validateMemberRole)
	validate.RegisterValidation("switch_status", validateSwitchStatus)
	validate.RegisterValidation("document_type", validateDocumentType)
	validate.RegisterValidation("state_code", validateStateCode)
	validate.RegisterValidation("date_only", validateDateOnly)
	validate.RegisterValidation("signature_name", validateSignatureName)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidateUrlParamID(param string) error {
	_, err := uuid.Parse(param)
	return err
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 && reSpecialChar.MatchString(password) && reUppercase.MatchString(password)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return rePhoneNumber.MatchString(fl.Field().String())
}

// Admins are provisioned out of band and can never self-register.
func validatePlatformRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.RolePatient || value == constvars.RoleAgency
}

func validateMemberRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.MemberRoleOwner, constvars.MemberRoleAdmin, constvars.MemberRoleStaff:
		return true
	}
	return false
}

func validateSwitchStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.SwitchRequestStatusSubmitted,
		constvars.SwitchRequestStatusUnderReview,
		constvars.SwitchRequestStatusAccepted,
		constvars.SwitchRequestStatusDenied,
		constvars.SwitchRequestStatusCompleted,
		constvars.SwitchRequestStatusCancelled:
		return true
	}
	return false
}

func validateDocumentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constvars.DocumentTypeConsent,
		constvars.DocumentTypeCarePlan,
		constvars.DocumentTypeInsurance,
		constvars.DocumentTypeIdentity,
		constvars.DocumentTypeMedical,
		constvars.DocumentTypeOther:
		return true
	}
	return false
}

func validateStateCode(fl validator.FieldLevel) bool {
	return reStateCode.MatchString(fl.Field().String())
}

func validateDateOnly(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !reDateOnly.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validateSignatureName(fl validator.FieldLevel) bool {
	return IsValidSignatureName(fl.Field().String())
}

// IsValidSignatureName rejects the checksum field separator and control
// characters, which would let two field sets share one canonical payload.
func IsValidSignatureName(name string) bool {
	for _, r := range name {
		if r == '|' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
