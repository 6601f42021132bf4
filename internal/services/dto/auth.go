package dto

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,gig-email"`
	Phone    string `json:"phone" binding:"required,gig-phone"`
	Password string `json:"password" binding:"required,gig-password"`
}

type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	// только при доставке echo (разработка)
	VerificationCode string `json:"verification_code,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type CodeSentResponse struct {
	Message          string `json:"message"`
	VerificationCode string `json:"verification_code,omitempty"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

type PasswordResetResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"reset_token,omitempty"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,gig-password"`
}
