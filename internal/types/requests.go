package types

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	ImageURL string `json:"image_url"`
}

// LoginRequest represents the request body for authenticating.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the request body for editing a profile.
// Password must carry the current password; no field is changed unless it
// verifies against the stored credential.
type UpdateProfileRequest struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	ImageURL       *string `json:"image_url"`
	HeaderImageURL *string `json:"header_image_url"`
	Bio            *string `json:"bio"`
	Location       *string `json:"location"`
	Password       string  `json:"password" binding:"required"`
}

// CreateMessageRequest represents the request body for posting a message.
type CreateMessageRequest struct {
	Text string `json:"text" binding:"required"`
}
