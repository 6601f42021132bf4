package repositories

import (
	"errors"

	"gigup_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application for this gig already exists")
	// ErrApplicationNotPending - заявка уже принята или отклонена
	ErrApplicationNotPending = errors.New("application is not pending")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByGig(db *gorm.DB, gigID string) ([]models.Application, error)
	FindBySeeker(db *gorm.DB, seekerID string) ([]models.Application, error)

	Accept(db *gorm.DB, id string) error
	Reject(db *gorm.DB, id string) error
	// RejectSiblings отклоняет все прочие ожидающие заявки на гиг
	RejectSiblings(db *gorm.DB, gigID, acceptedID string) (int64, error)
	RejectPendingForGig(db *gorm.DB, gigID string) (int64, error)
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, app *models.Application) error {
	if app.Status == "" {
		app.Status = models.ApplicationStatusPending
	}
	if err := db.Create(app).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := db.Preload("Gig").First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByGig(db *gorm.DB, gigID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Seeker").
		Where("gig_id = ?", gigID).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) FindBySeeker(db *gorm.DB, seekerID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Gig").
		Where("seeker_id = ?", seekerID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) Accept(db *gorm.DB, id string) error {
	return r.resolve(db, id, models.ApplicationStatusAccepted)
}

func (r *applicationRepository) Reject(db *gorm.DB, id string) error {
	return r.resolve(db, id, models.ApplicationStatusRejected)
}

func (r *applicationRepository) RejectSiblings(db *gorm.DB, gigID, acceptedID string) (int64, error) {
	result := db.Model(&models.Application{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, acceptedID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusRejected)
	return result.RowsAffected, result.Error
}

func (r *applicationRepository) RejectPendingForGig(db *gorm.DB, gigID string) (int64, error) {
	result := db.Model(&models.Application{}).
		Where("gig_id = ? AND status = ?", gigID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusRejected)
	return result.RowsAffected, result.Error
}

// resolve переводит заявку из pending, повторный переход не проходит
func (r *applicationRepository) resolve(db *gorm.DB, id string, to models.ApplicationStatus) error {
	result := db.Model(&models.Application{}).
		Where("id = ? AND status = ?", id, models.ApplicationStatusPending).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotPending
	}
	return nil
}
