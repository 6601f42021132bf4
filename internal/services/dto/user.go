package dto

import (
	"time"

	"gigup_backend/internal/models"
)

type UserResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Role           models.UserRole `json:"role"`
	Skills         string          `json:"skills"`
	Bio            string          `json:"bio"`
	Rating         float64         `json:"rating"`
	TotalRatings   int             `json:"total_ratings"`
	VerifiedEmail  bool            `json:"verified_email"`
	VerifiedPhone  bool            `json:"verified_phone"`
	VerifiedSocial bool            `json:"verified_social"`
	IsApproved     bool            `json:"is_approved"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Role:           u.Role,
		Skills:         u.Skills,
		Bio:            u.Bio,
		Rating:         u.Rating,
		TotalRatings:   u.TotalRatings,
		VerifiedEmail:  u.VerifiedEmail,
		VerifiedPhone:  u.VerifiedPhone,
		VerifiedSocial: u.VerifiedSocial,
		IsApproved:     u.IsApproved,
		CreatedAt:      u.CreatedAt,
	}
}

// UpdateProfileRequest - только эти поля профиль позволяет менять
type UpdateProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone  *string `json:"phone" binding:"omitempty,gig-phone"`
	Skills *string `json:"skills" binding:"omitempty,max=500"`
	Bio    *string `json:"bio" binding:"omitempty,max=2000"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,gig-password"`
}

type UserListResponse struct {
	Users []*UserResponse `json:"users"`
}

type ApproveUserRequest struct {
	// nil означает true
	Approved *bool `json:"approved"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
