package repositories

import (
	"errors"

	"gigup_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

// ProfileUpdate - фиксированный набор полей профиля, которые пользователь может менять.
// nil означает "не менять".
type ProfileUpdate struct {
	Name   *string
	Phone  *string
	Skills *string
	Bio    *string
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Skills == nil && u.Bio == nil
}

func (u ProfileUpdate) columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Phone != nil {
		cols["phone"] = *u.Phone
	}
	if u.Skills != nil {
		cols["skills"] = *u.Skills
	}
	if u.Bio != nil {
		cols["bio"] = *u.Bio
	}
	return cols
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	List(db *gorm.DB) ([]models.User, error)

	UpdateProfile(db *gorm.DB, id string, update ProfileUpdate) error
	UpdatePassword(db *gorm.DB, id, passwordHash string) error
	SetApproved(db *gorm.DB, id string, approved bool) error
	MarkEmailVerified(db *gorm.DB, id string) error
	MarkPhoneVerified(db *gorm.DB, id string) error

	// AddRating атомарно пересчитывает накопленный рейтинг с новой оценкой
	AddRating(db *gorm.DB, id string, rating int) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateProfile(db *gorm.DB, id string, update ProfileUpdate) error {
	if update.Empty() {
		return nil
	}
	return r.updateColumns(db, id, update.columns())
}

func (r *userRepository) UpdatePassword(db *gorm.DB, id, passwordHash string) error {
	return r.updateColumns(db, id, map[string]interface{}{"password_hash": passwordHash})
}

func (r *userRepository) SetApproved(db *gorm.DB, id string, approved bool) error {
	return r.updateColumns(db, id, map[string]interface{}{"is_approved": approved})
}

func (r *userRepository) MarkEmailVerified(db *gorm.DB, id string) error {
	return r.updateColumns(db, id, map[string]interface{}{"verified_email": true})
}

func (r *userRepository) MarkPhoneVerified(db *gorm.DB, id string) error {
	return r.updateColumns(db, id, map[string]interface{}{"verified_phone": true})
}

func (r *userRepository) AddRating(db *gorm.DB, id string, rating int) error {
	// все выражения в SET видят старые значения строки
	return r.updateColumns(db, id, map[string]interface{}{
		"rating":        gorm.Expr("(rating * total_ratings + ?) / (total_ratings + 1)", float64(rating)),
		"total_ratings": gorm.Expr("total_ratings + 1"),
	})
}

func (r *userRepository) updateColumns(db *gorm.DB, id string, cols map[string]interface{}) error {
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
