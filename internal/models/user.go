package models

type User struct {
	BaseModel
	Name           string   `gorm:"not null" json:"name"`
	Email          string   `gorm:"uniqueIndex;not null" json:"email"`
	Phone          string   `gorm:"not null" json:"phone"`
	PasswordHash   string   `gorm:"not null" json:"-"`
	Role           UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Skills         string   `json:"skills"`
	Bio            string   `json:"bio"`
	Rating         float64  `gorm:"not null;default:0" json:"rating"`
	TotalRatings   int      `gorm:"not null;default:0" json:"total_ratings"`
	VerifiedEmail  bool     `gorm:"not null;default:false" json:"verified_email"`
	VerifiedPhone  bool     `gorm:"not null;default:false" json:"verified_phone"`
	VerifiedSocial bool     `gorm:"not null;default:false" json:"verified_social"`
	IsApproved     bool     `gorm:"not null;default:false;index" json:"is_approved"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// HasRating - рейтинг имеет смысл только при наличии хотя бы одной оценки.
func (u *User) HasRating() bool {
	return u.TotalRatings > 0
}
