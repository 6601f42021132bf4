package repositories

import (
	"errors"

	"gigup_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewExists = errors.New("review for this gig already exists")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByReviewed(db *gorm.DB, userID string) ([]models.Review, error)
	CountByReviewed(db *gorm.DB, userID string) (int64, error)
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrReviewExists
		}
		return err
	}
	return nil
}

func (r *reviewRepository) FindByReviewed(db *gorm.DB, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").
		Where("reviewed_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) CountByReviewed(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Review{}).Where("reviewed_id = ?", userID).Count(&count).Error
	return count, err
}
