package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel - общий идентификатор и метки времени для всех таблиц.
// ID генерируется в приложении, чтобы не зависеть от расширений БД (uuid-ossp).
type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels - список моделей для AutoMigrate и сброса БД.
// Порядок важен: сначала таблицы без внешних ключей.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Gig{},
		&Application{},
		&Contract{},
		&Review{},
		&VerificationCode{},
	}
}
