package database

import (
	"fmt"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate создает или обновляет схему всех моделей
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("AutoMigrate completed", "tables", len(models.AllModels()))
	return nil
}

// Reset удаляет все таблицы и создает схему заново. Только для разработки.
func Reset(db *gorm.DB) error {
	all := models.AllModels()
	// в обратном порядке, чтобы зависимые таблицы уходили первыми
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	logger.Warn("All tables dropped")
	return Migrate(db)
}
