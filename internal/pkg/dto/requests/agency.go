package requests

type UpsertAgency struct {
	Name              string   `json:"name" validate:"required,min=2,max=200"`
	LicenseNumber     string   `json:"license_number" validate:"required,max=64"`
	LicenseState      string   `json:"license_state" validate:"required,state_code"`
	Phone             string   `json:"phone" validate:"omitempty,phone_number"`
	Email             string   `json:"email" validate:"omitempty,email"`
	Address           string   `json:"address" validate:"omitempty,max=500"`
	City              string   `json:"city" validate:"omitempty,max=120"`
	State             string   `json:"state" validate:"required,state_code"`
	ZipCode           string   `json:"zip_code" validate:"omitempty,max=10"`
	Services          []string `json:"services" validate:"omitempty,max=30,dive,min=2,max=80"`
	AcceptingPatients *bool    `json:"accepting_patients"`
	Description       string   `json:"description" validate:"omitempty,max=2000"`
}

type FindAllAgencies struct {
	Pagination
	Name    string
	State   string
	Service string
	// OnlyVerified hides unverified agencies from non-admin callers.
	OnlyVerified bool
}

type AddAgencyMember struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,member_role"`
}
