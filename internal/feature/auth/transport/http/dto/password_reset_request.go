package dto

// PasswordResetReq represents the request body for /api/auth/password-reset.
type PasswordResetReq struct {
	Email string `json:"email" binding:"required,email"`
}

// NewPasswordReq represents the request body for /api/auth/new-password,
// consuming a previously issued reset token.
type NewPasswordReq struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
