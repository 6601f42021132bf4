package dto

import (
	"time"

	"gigup_backend/internal/algorithms"
	"gigup_backend/internal/models"
)

type CreateGigRequest struct {
	Title           string    `json:"title" binding:"required,max=200"`
	Category        string    `json:"category" binding:"required,max=100"`
	SkillsRequired  string    `json:"skills_required" binding:"max=500"`
	Description     string    `json:"description" binding:"max=5000"`
	DateTime        time.Time `json:"date_time" binding:"required"`
	Duration        string    `json:"duration" binding:"max=100"`
	Pay             *float64  `json:"pay" binding:"required,gte=0"`
	LocationLat     *float64  `json:"location_lat" binding:"required,latitude"`
	LocationLng     *float64  `json:"location_lng" binding:"required,longitude"`
	LocationAddress string    `json:"location_address" binding:"max=500"`
}

type GigCreatedResponse struct {
	Message string `json:"message"`
	GigID   string `json:"gig_id"`
}

// GigListQuery - фильтры публичного списка гигов
type GigListQuery struct {
	Lat         *float64 `form:"lat" binding:"omitempty,latitude"`
	Lng         *float64 `form:"lng" binding:"omitempty,longitude"`
	MaxDistance *float64 `form:"max_distance" binding:"omitempty,gt=0"`
	Category    string   `form:"category"`
	UserID      string   `form:"user_id"`
}

type RecommendationQuery struct {
	Lat *float64 `form:"lat" binding:"omitempty,latitude"`
	Lng *float64 `form:"lng" binding:"omitempty,longitude"`
}

type GigResponse struct {
	ID              string           `json:"id"`
	ProviderID      string           `json:"provider_id"`
	ProviderName    string           `json:"provider_name,omitempty"`
	ProviderRating  float64          `json:"provider_rating"`
	Title           string           `json:"title"`
	Category        string           `json:"category"`
	SkillsRequired  string           `json:"skills_required"`
	Description     string           `json:"description"`
	DateTime        time.Time        `json:"date_time"`
	Duration        string           `json:"duration"`
	Pay             float64          `json:"pay"`
	LocationLat     float64          `json:"location_lat"`
	LocationLng     float64          `json:"location_lng"`
	LocationAddress string           `json:"location_address"`
	Status          models.GigStatus `json:"status"`
	SeekerID        *string          `json:"seeker_id"`
	CreatedAt       time.Time        `json:"created_at"`
	Distance        *float64         `json:"distance,omitempty"`
}

type GigDetailResponse struct {
	GigResponse
	ProviderEmail string `json:"provider_email"`
	ProviderPhone string `json:"provider_phone"`
}

type GigEnvelope struct {
	Gig *GigDetailResponse `json:"gig"`
}

type GigListResponse struct {
	Gigs []*GigResponse `json:"gigs"`
}

type RecommendationResponse struct {
	GigResponse
	MatchScore float64                   `json:"match_score"`
	Breakdown  algorithms.MatchBreakdown `json:"breakdown"`
}

type RecommendationListResponse struct {
	Recommendations []*RecommendationResponse `json:"recommendations"`
}

func NewGigResponse(g *models.Gig) *GigResponse {
	resp := &GigResponse{
		ID:              g.ID,
		ProviderID:      g.ProviderID,
		Title:           g.Title,
		Category:        g.Category,
		SkillsRequired:  g.SkillsRequired,
		Description:     g.Description,
		DateTime:        g.DateTime,
		Duration:        g.Duration,
		Pay:             g.Pay,
		LocationLat:     g.LocationLat,
		LocationLng:     g.LocationLng,
		LocationAddress: g.LocationAddress,
		Status:          g.Status,
		SeekerID:        g.SeekerID,
		CreatedAt:       g.CreatedAt,
	}
	if g.Provider != nil {
		resp.ProviderName = g.Provider.Name
		resp.ProviderRating = g.Provider.Rating
	}
	return resp
}
