package api

// UpdateProfileRequest carries a partial profile update; nil fields are
// left untouched by the backend.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}
