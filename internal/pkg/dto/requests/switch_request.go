package requests

type CreateSwitchRequest struct {
	CurrentAgencyID    string `json:"current_agency_id" validate:"omitempty,uuid"`
	NewAgencyID        string `json:"new_agency_id" validate:"required,uuid"`
	Reason             string `json:"reason" validate:"required,min=10,max=2000"`
	CareNeeds          string `json:"care_needs" validate:"omitempty,max=4000"`
	PreferredStartDate string `json:"preferred_start_date" validate:"omitempty,date_only"`
}

type UpdateSwitchRequestStatus struct {
	Status string `json:"status" validate:"required,switch_status"`
	Note   string `json:"note" validate:"omitempty,max=2000"`
}

// FindAllSwitchRequests is scoped by the caller: exactly one of PatientID or
// MemberProfileID is set unless the caller is an admin.
type FindAllSwitchRequests struct {
	Pagination
	Status          string
	PatientID       string
	MemberProfileID string
}
