package models

type Application struct {
	BaseModel
	GigID    string            `gorm:"type:uuid;not null;uniqueIndex:idx_application_gig_seeker" json:"gig_id"`
	SeekerID string            `gorm:"type:uuid;not null;uniqueIndex:idx_application_gig_seeker;index" json:"seeker_id"`
	Message  string            `json:"message"`
	Status   ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Relations
	Gig    *Gig  `gorm:"foreignKey:GigID" json:"-"`
	Seeker *User `gorm:"foreignKey:SeekerID" json:"-"`
}
