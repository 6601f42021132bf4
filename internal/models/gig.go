package models

import "time"

type Gig struct {
	BaseModel
	ProviderID      string    `gorm:"type:uuid;not null;index" json:"provider_id"`
	Title           string    `gorm:"not null" json:"title"`
	Category        string    `gorm:"not null;index" json:"category"`
	SkillsRequired  string    `json:"skills_required"`
	Description     string    `json:"description"`
	DateTime        time.Time `gorm:"not null" json:"date_time"`
	Duration        string    `json:"duration"`
	Pay             float64   `gorm:"not null" json:"pay"`
	LocationLat     float64   `gorm:"not null" json:"location_lat"`
	LocationLng     float64   `gorm:"not null" json:"location_lng"`
	LocationAddress string    `json:"location_address"`
	Status          GigStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	SeekerID        *string   `gorm:"type:uuid;index" json:"seeker_id"`

	// Relations
	Provider *User `gorm:"foreignKey:ProviderID" json:"-"`
	Seeker   *User `gorm:"foreignKey:SeekerID" json:"-"`
}

func (g *Gig) IsOpen() bool {
	return g.Status == GigStatusOpen
}

func (g *Gig) IsParty(userID string) bool {
	if g.ProviderID == userID {
		return true
	}
	return g.SeekerID != nil && *g.SeekerID == userID
}
