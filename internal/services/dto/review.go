package dto

import (
	"time"

	"gigup_backend/internal/models"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type ReviewCreatedResponse struct {
	Message  string `json:"message"`
	ReviewID string `json:"review_id"`
}

type ReviewResponse struct {
	ID           string    `json:"id"`
	GigID        string    `json:"gig_id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	ReviewedID   string    `json:"reviewed_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []*ReviewResponse `json:"reviews"`
}

func NewReviewResponse(r *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:         r.ID,
		GigID:      r.GigID,
		ReviewerID: r.ReviewerID,
		ReviewedID: r.ReviewedID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
	if r.Reviewer != nil {
		resp.ReviewerName = r.Reviewer.Name
	}
	return resp
}
