// Package testutil - общие фикстуры для тестов: sqlite в памяти, miniredis, пользователи.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"gigup_backend/internal/database"
	"gigup_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewTestDB - отдельная sqlite-база в памяти на каждый тест, со всей схемой
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Connect("sqlite", dsn, database.Options{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// UserOption меняет пользователя перед сохранением
type UserOption func(*models.User)

func Approved() UserOption {
	return func(u *models.User) { u.IsApproved = true }
}

func Admin() UserOption {
	return func(u *models.User) {
		u.Role = models.UserRoleAdmin
		u.IsApproved = true
	}
}

func WithSkills(skills string) UserOption {
	return func(u *models.User) { u.Skills = skills }
}

func WithRating(rating float64, total int) UserOption {
	return func(u *models.User) {
		u.Rating = rating
		u.TotalRatings = total
	}
}

// TestPassword - пароль всех пользователей, созданных CreateUser
const TestPassword = "password123"

// CreateUser сохраняет пользователя с уникальным email и паролем TestPassword
func CreateUser(t *testing.T, db *gorm.DB, name string, opts ...UserOption) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         name,
		Email:        strings.ToLower(fmt.Sprintf("%s_%s@test.com", name, uuid.NewString()[:8])),
		PasswordHash: string(hash),
		Role:         models.UserRoleUser,
	}
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
