package models

import "time"

// VerificationCode - одноразовый код подтверждения email/телефона или сброса пароля.
// Для пары (user, type) действителен не более чем один неиспользованный код.
type VerificationCode struct {
	BaseModel
	UserID    string           `gorm:"type:uuid;not null;index:idx_verification_user_type"`
	Code      string           `gorm:"not null;index"`
	Type      VerificationType `gorm:"type:varchar(20);not null;index:idx_verification_user_type"`
	ExpiresAt time.Time        `gorm:"not null;index"`
	Used      bool             `gorm:"not null;default:false"`

	User *User `gorm:"foreignKey:UserID"`
}

func (v *VerificationCode) Active(now time.Time) bool {
	return !v.Used && v.ExpiresAt.After(now)
}
