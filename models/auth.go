package models

// LoginRequest represents the first step of the 2FA login
type LoginRequest struct {
	Correo   string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate returns per-field validation messages, or nil when valid.
func (r *LoginRequest) Validate() []string {
	return CheckStruct(r)
}

// VerifyOTPRequest represents the second step of the 2FA login
type VerifyOTPRequest struct {
	Correo string `json:"correo" validate:"required,email"`
	OTP    string `json:"otp" validate:"required,numeric,len=6"`
}

// LoginResponse is returned after the OTP has been sent
type LoginResponse struct {
	Status  string `json:"status"`
	Mensaje string `json:"msg"`
}

// TokenResponse is returned after a successful OTP verification
type TokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	User   *User  `json:"user"`
}

// RecoverRequest asks for a password-reset email
type RecoverRequest struct {
	Correo string `json:"correo" validate:"required,email"`
}

// ResetPasswordRequest consumes a reset token
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
