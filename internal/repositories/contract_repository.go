package repositories

import (
	"errors"
	"time"

	"gigup_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContractNotFound = errors.New("contract not found")

type ContractRepository interface {
	Create(db *gorm.DB, contract *models.Contract) error
	FindByID(db *gorm.DB, id string) (*models.Contract, error)
	FindForUser(db *gorm.DB, userID string) ([]models.Contract, error)

	// SignAsProvider/SignAsSeeker пишут подпись, только если ее еще нет и контракт pending.
	// false - подпись не записана
	SignAsProvider(db *gorm.DB, id, signature string) (bool, error)
	SignAsSeeker(db *gorm.DB, id, signature string) (bool, error)
	// MarkSignedIfComplete переводит контракт в signed, когда обе подписи на месте.
	// true ровно для того вызова, который выполнил переход
	MarkSignedIfComplete(db *gorm.DB, id string, now time.Time) (bool, error)

	CompleteForGig(db *gorm.DB, gigID string) (int64, error)
	CancelPendingForGig(db *gorm.DB, gigID string) (int64, error)
}

type contractRepository struct{}

func NewContractRepository() ContractRepository {
	return &contractRepository{}
}

func (r *contractRepository) Create(db *gorm.DB, contract *models.Contract) error {
	if contract.Status == "" {
		contract.Status = models.ContractStatusPending
	}
	return db.Create(contract).Error
}

func (r *contractRepository) FindByID(db *gorm.DB, id string) (*models.Contract, error) {
	var contract models.Contract
	if err := db.Preload("Gig").First(&contract, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindForUser(db *gorm.DB, userID string) ([]models.Contract, error) {
	var contracts []models.Contract
	err := db.Preload("Gig").Preload("Provider").Preload("Seeker").
		Where("provider_id = ? OR seeker_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) SignAsProvider(db *gorm.DB, id, signature string) (bool, error) {
	return r.sign(db, id, "provider_signature", signature)
}

func (r *contractRepository) SignAsSeeker(db *gorm.DB, id, signature string) (bool, error) {
	return r.sign(db, id, "seeker_signature", signature)
}

func (r *contractRepository) sign(db *gorm.DB, id, column, signature string) (bool, error) {
	result := db.Model(&models.Contract{}).
		Where("id = ? AND status = ? AND "+column+" IS NULL", id, models.ContractStatusPending).
		Update(column, signature)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *contractRepository) MarkSignedIfComplete(db *gorm.DB, id string, now time.Time) (bool, error) {
	result := db.Model(&models.Contract{}).
		Where("id = ? AND status = ? AND provider_signature IS NOT NULL AND seeker_signature IS NOT NULL",
			id, models.ContractStatusPending).
		Updates(map[string]interface{}{
			"status":    models.ContractStatusSigned,
			"signed_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *contractRepository) CompleteForGig(db *gorm.DB, gigID string) (int64, error) {
	result := db.Model(&models.Contract{}).
		Where("gig_id = ? AND status = ?", gigID, models.ContractStatusSigned).
		Update("status", models.ContractStatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *contractRepository) CancelPendingForGig(db *gorm.DB, gigID string) (int64, error) {
	result := db.Model(&models.Contract{}).
		Where("gig_id = ? AND status = ?", gigID, models.ContractStatusPending).
		Update("status", models.ContractStatusCancelled)
	return result.RowsAffected, result.Error
}
