package models

type Review struct {
	BaseModel
	ReviewerID string `gorm:"type:uuid;not null;uniqueIndex:idx_review_gig_reviewer" json:"reviewer_id"`
	ReviewedID string `gorm:"type:uuid;not null;index" json:"reviewed_id"`
	GigID      string `gorm:"type:uuid;not null;uniqueIndex:idx_review_gig_reviewer" json:"gig_id"`
	Rating     int    `gorm:"not null" json:"rating"`
	Comment    string `json:"comment"`

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"-"`
	Reviewed *User `gorm:"foreignKey:ReviewedID" json:"-"`
	Gig      *Gig  `gorm:"foreignKey:GigID" json:"-"`
}
