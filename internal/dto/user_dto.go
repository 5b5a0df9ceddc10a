package dto

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
}
