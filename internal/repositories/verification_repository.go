package repositories

import (
	"errors"
	"time"

	"gigup_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrVerificationCodeNotFound = errors.New("verification code not found")

type VerificationRepository interface {
	Create(db *gorm.DB, code *models.VerificationCode) error
	// LockOwner берет блокировку строки владельца кодов до конца транзакции
	LockOwner(db *gorm.DB, userID string) error
	// InvalidateActive помечает использованными все неиспользованные коды пары (user, type)
	InvalidateActive(db *gorm.DB, userID string, t models.VerificationType) (int64, error)
	// Consume - условное погашение: ровно одна строка или ничего
	Consume(db *gorm.DB, userID string, t models.VerificationType, code string, now time.Time) (bool, error)
	FindActiveByCode(db *gorm.DB, t models.VerificationType, code string, now time.Time) (*models.VerificationCode, error)
	ConsumeByID(db *gorm.DB, id string, now time.Time) (bool, error)
	// PurgeStale удаляет использованные и истекшие коды старше before
	PurgeStale(db *gorm.DB, before time.Time) (int64, error)
}

type verificationRepository struct{}

func NewVerificationRepository() VerificationRepository {
	return &verificationRepository{}
}

func (r *verificationRepository) Create(db *gorm.DB, code *models.VerificationCode) error {
	return db.Create(code).Error
}

// Выпуски кодов одного пользователя сериализуются на его строке в users:
// без этого два параллельных Issue в READ COMMITTED оставляют два активных кода
func (r *verificationRepository) LockOwner(db *gorm.DB, userID string) error {
	var user models.User
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (r *verificationRepository) InvalidateActive(db *gorm.DB, userID string, t models.VerificationType) (int64, error) {
	result := db.Model(&models.VerificationCode{}).
		Where("user_id = ? AND type = ? AND used = ?", userID, t, false).
		Update("used", true)
	return result.RowsAffected, result.Error
}

func (r *verificationRepository) Consume(db *gorm.DB, userID string, t models.VerificationType, code string, now time.Time) (bool, error) {
	result := db.Model(&models.VerificationCode{}).
		Where("user_id = ? AND type = ? AND code = ? AND used = ? AND expires_at > ?", userID, t, code, false, now).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *verificationRepository) FindActiveByCode(db *gorm.DB, t models.VerificationType, code string, now time.Time) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := db.Where("type = ? AND code = ? AND used = ? AND expires_at > ?", t, code, false, now).
		First(&vc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationCodeNotFound
		}
		return nil, err
	}
	return &vc, nil
}

func (r *verificationRepository) ConsumeByID(db *gorm.DB, id string, now time.Time) (bool, error) {
	result := db.Model(&models.VerificationCode{}).
		Where("id = ? AND used = ? AND expires_at > ?", id, false, now).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *verificationRepository) PurgeStale(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Where("(used = ? OR expires_at <= ?) AND created_at < ?", true, before, before).
		Delete(&models.VerificationCode{})
	return result.RowsAffected, result.Error
}
