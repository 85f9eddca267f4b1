package user

type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
}

type ProfileResponse struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Phone        string  `json:"phone,omitempty"`
	Department   string  `json:"department,omitempty"`
	ProfileImage *string `json:"profile_image"`
}

type UserSummaryResponse struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

type PhotoResponse struct {
	Message      string `json:"message"`
	ProfileImage string `json:"profile_image"`
}
