package repositories

import (
	"errors"

	"gigup_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrGigNotFound = errors.New("gig not found")
	// ErrGigStatusConflict - гиг не в том статусе, из которого разрешен переход
	ErrGigStatusConflict = errors.New("gig status does not allow this transition")
)

type GigRepository interface {
	Create(db *gorm.DB, gig *models.Gig) error
	FindByID(db *gorm.DB, id string) (*models.Gig, error)
	FindByIDWithProvider(db *gorm.DB, id string) (*models.Gig, error)
	FindOpen(db *gorm.DB, category string) ([]models.Gig, error)
	FindByProvider(db *gorm.DB, providerID string) ([]models.Gig, error)

	// Переходы статусов. Каждый - условный UPDATE, гонка двух переходов дает ErrGigStatusConflict
	Assign(db *gorm.DB, id, seekerID string) error
	StartWork(db *gorm.DB, id, seekerID string) error
	Complete(db *gorm.DB, id string) error
	Cancel(db *gorm.DB, id string) error
}

type gigRepository struct{}

func NewGigRepository() GigRepository {
	return &gigRepository{}
}

func (r *gigRepository) Create(db *gorm.DB, gig *models.Gig) error {
	if gig.Status == "" {
		gig.Status = models.GigStatusOpen
	}
	return db.Create(gig).Error
}

func (r *gigRepository) FindByID(db *gorm.DB, id string) (*models.Gig, error) {
	var gig models.Gig
	if err := db.First(&gig, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

func (r *gigRepository) FindByIDWithProvider(db *gorm.DB, id string) (*models.Gig, error) {
	var gig models.Gig
	if err := db.Preload("Provider").First(&gig, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

// FindOpen - открытые гиги, опционально по категории. Порядок стабильный (created_at, id)
func (r *gigRepository) FindOpen(db *gorm.DB, category string) ([]models.Gig, error) {
	var gigs []models.Gig
	query := db.Preload("Provider").Where("status = ?", models.GigStatusOpen)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("created_at ASC").Order("id ASC").Find(&gigs).Error
	return gigs, err
}

func (r *gigRepository) FindByProvider(db *gorm.DB, providerID string) ([]models.Gig, error) {
	var gigs []models.Gig
	err := db.Preload("Provider").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&gigs).Error
	return gigs, err
}

func (r *gigRepository) Assign(db *gorm.DB, id, seekerID string) error {
	return r.transition(db, id, []models.GigStatus{models.GigStatusOpen}, map[string]interface{}{
		"status":    models.GigStatusAssigned,
		"seeker_id": seekerID,
	})
}

// StartWork переводит гиг в работу под seekerID. Назначенный гиг принимается
// только если он назначен этому же исполнителю
func (r *gigRepository) StartWork(db *gorm.DB, id, seekerID string) error {
	return r.apply(db, id,
		cond(db).Where("status = ? AND seeker_id IS NULL", models.GigStatusOpen).
			Or("status = ? AND seeker_id = ?", models.GigStatusAssigned, seekerID),
		map[string]interface{}{
			"status":    models.GigStatusInProgress,
			"seeker_id": seekerID,
		})
}

func (r *gigRepository) Complete(db *gorm.DB, id string) error {
	return r.transition(db, id, []models.GigStatus{models.GigStatusInProgress}, map[string]interface{}{
		"status": models.GigStatusCompleted,
	})
}

func (r *gigRepository) Cancel(db *gorm.DB, id string) error {
	return r.transition(db, id, []models.GigStatus{models.GigStatusOpen, models.GigStatusAssigned}, map[string]interface{}{
		"status":    models.GigStatusCancelled,
		"seeker_id": gorm.Expr("NULL"),
	})
}

func (r *gigRepository) transition(db *gorm.DB, id string, from []models.GigStatus, cols map[string]interface{}) error {
	return r.apply(db, id, cond(db).Where("status IN ?", from), cols)
}

// cond - чистая сессия для группы условий
func cond(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}

// apply обновляет гиг, только если он удовлетворяет условию where
func (r *gigRepository) apply(db *gorm.DB, id string, where *gorm.DB, cols map[string]interface{}) error {
	result := db.Model(&models.Gig{}).
		Where("id = ?", id).
		Where(where).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// отличаем "нет такого гига" от "не тот статус"
	var count int64
	if err := db.Model(&models.Gig{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrGigNotFound
	}
	return ErrGigStatusConflict
}
