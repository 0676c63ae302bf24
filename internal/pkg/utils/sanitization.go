package utils

import (
	"strings"

	"carelink-service/internal/pkg/dto/requests"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	sanitizedArray := make([]string, 0, len(input))
	seen := make(map[string]bool, len(input))
	for _, v := range input {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		sanitizedArray = append(sanitizedArray, v)
	}
	return sanitizedArray
}

func SanitizeRegisterUserRequest(input *requests.RegisterUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
}

func SanitizeLoginUserRequest(input *requests.LoginUser) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeUpdateProfileRequest(input *requests.UpdateProfile) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Address = strings.TrimSpace(input.Address)
}

func SanitizeUpsertAgencyRequest(input *requests.UpsertAgency) {
	input.Name = strings.TrimSpace(input.Name)
	input.LicenseNumber = strings.ToUpper(strings.TrimSpace(input.LicenseNumber))
	input.LicenseState = strings.ToUpper(strings.TrimSpace(input.LicenseState))
	input.State = strings.ToUpper(strings.TrimSpace(input.State))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.City = strings.TrimSpace(input.City)
	input.ZipCode = strings.TrimSpace(input.ZipCode)

	input.Services = cleanWhiteSpaceFromEachStringOfAnArray(input.Services)
}

func SanitizeAddAgencyMemberRequest(input *requests.AddAgencyMember) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
}

func SanitizeCreateSwitchRequest(input *requests.CreateSwitchRequest) {
	input.CurrentAgencyID = strings.TrimSpace(input.CurrentAgencyID)
	input.NewAgencyID = strings.TrimSpace(input.NewAgencyID)
	input.Reason = strings.TrimSpace(input.Reason)
	input.CareNeeds = strings.TrimSpace(input.CareNeeds)
	input.PreferredStartDate = strings.TrimSpace(input.PreferredStartDate)
}

func SanitizeCreateESignatureRequest(input *requests.CreateESignature) {
	input.DocumentID = strings.TrimSpace(input.DocumentID)
	input.SwitchRequestID = strings.TrimSpace(input.SwitchRequestID)
	input.TypedName = strings.TrimSpace(input.TypedName)
	input.DrawnImage = strings.TrimSpace(input.DrawnImage)
}

func SanitizeSendMessageRequest(input *requests.SendMessage) {
	input.Body = strings.TrimSpace(input.Body)
}
