package api

import "github.com/blackfile/blackfile-cli/internal/models"

// RegisterRequest starts account creation. The backend answers with an
// OTP challenge sent to the given email.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// RegisterResponse reports whether email verification is required to
// finish the registration.
type RegisterResponse struct {
	Message     string `json:"message"`
	RequiresOTP bool   `json:"requiresOTP"`
	UserID      string `json:"userId"`
}

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the bearer credential pair issued by the backend.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse is either an OTP challenge (RequiresOTP set, UserID for
// the follow-up verify call) or a completed login with tokens and
// profile. The backend has shipped two token layouts over time, so the
// flat Token/RefreshToken fields are kept as a fallback next to Tokens.
type LoginResponse struct {
	RequiresOTP  bool                `json:"requiresOTP"`
	UserID       string              `json:"userId"`
	Tokens       *TokenPair          `json:"tokens"`
	Token        string              `json:"token"`
	RefreshToken string              `json:"refreshToken"`
	User         *models.UserProfile `json:"user"`
}

// OTPRequest completes a login or registration challenge.
type OTPRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

// VerifyOTPResponse carries the tokens and profile issued once the OTP
// code is accepted.
type VerifyOTPResponse struct {
	Tokens       *TokenPair          `json:"tokens"`
	Token        string              `json:"token"`
	RefreshToken string              `json:"refreshToken"`
	User         *models.UserProfile `json:"user"`
}

// RefreshRequest trades a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse carries the renewed tokens. RefreshToken may be empty
// when the backend does not rotate it.
type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// ErrorResponse is the error body of a non-2xx response. Detail is used
// by the public share endpoints, Error by everything else.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}
