package requests

type UpdateProfile struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=120"`
	Phone       string `json:"phone" validate:"omitempty,phone_number"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,date_only"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

type FindAllProfiles struct {
	Pagination
	Role string
}
