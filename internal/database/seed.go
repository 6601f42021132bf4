package database

import (
	"errors"
	"fmt"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin создает первого администратора, если пользователя с таким email нет.
// Возвращает true, если администратор был создан.
func SeedAdmin(db *gorm.DB, email, password string) (bool, error) {
	if email == "" || password == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return false, nil
	}

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", email)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Name:          "Admin",
			Email:         email,
			PasswordHash:  string(hash),
			Role:          models.UserRoleAdmin,
			IsApproved:    true,
			VerifiedEmail: true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		logger.Info("Created first admin user", "email", email)
	}
	return created, nil
}
