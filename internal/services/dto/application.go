package dto

import (
	"time"

	"gigup_backend/internal/models"
)

type CreateApplicationRequest struct {
	Message string `json:"message" binding:"max=2000"`
}

type ApplicationCreatedResponse struct {
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
}

type ApplicationResponse struct {
	ID           string                   `json:"id"`
	GigID        string                   `json:"gig_id"`
	GigTitle     string                   `json:"gig_title,omitempty"`
	SeekerID     string                   `json:"seeker_id"`
	SeekerName   string                   `json:"seeker_name,omitempty"`
	SeekerRating float64                  `json:"seeker_rating"`
	Message      string                   `json:"message"`
	Status       models.ApplicationStatus `json:"status"`
	CreatedAt    time.Time                `json:"created_at"`
}

type ApplicationListResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
}

func NewApplicationResponse(a *models.Application) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:        a.ID,
		GigID:     a.GigID,
		SeekerID:  a.SeekerID,
		Message:   a.Message,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
	if a.Gig != nil {
		resp.GigTitle = a.Gig.Title
	}
	if a.Seeker != nil {
		resp.SeekerName = a.Seeker.Name
		resp.SeekerRating = a.Seeker.Rating
	}
	return resp
}
