package auth

import "patentq/internal/apperr"

// Messages are shown to API callers as-is.
var (
	ErrMissingFields      = apperr.Validation("Username, email and password are required")
	ErrEmailRequired      = apperr.Validation("Email is required")
	ErrInvalidEmail       = apperr.Validation("Invalid email format")
	ErrUserExists         = apperr.Conflict("User already exists")
	ErrInvalidCredentials = apperr.Auth("Invalid credentials")
	ErrUserNotFound       = apperr.NotFound("User not found")

	ErrTokenMissing = apperr.Auth("No token provided")
	ErrTokenInvalid = apperr.Auth("Invalid token")
	ErrTokenExpired = apperr.Auth("Token expired")

	// reset flow
	ErrEmailNotFound      = apperr.NotFound("Email not found")
	ErrNoChallenge        = apperr.Validation("No OTP request found")
	ErrInvalidOTP         = apperr.Validation("Invalid OTP")
	ErrExpiredOTP         = apperr.Validation("Expired OTP")
	ErrResetTokenRequired = apperr.Auth("Reset token required")
	ErrResetTokenInvalid  = apperr.Auth("Invalid or expired reset token")
)
