package services

import (
	"context"
	"strings"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/internal/validator"
	"gigup_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	// SendVerification выпускает и доставляет код подтверждения email или телефона
	SendVerification(ctx context.Context, db *gorm.DB, user *models.User, t models.VerificationType) (*dto.CodeSentResponse, error)
	Verify(ctx context.Context, db *gorm.DB, user *models.User, t models.VerificationType, code string) (*dto.MessageResponse, error)
}

type userService struct {
	userRepo     repositories.UserRepository
	verification VerificationService
}

func NewUserService(userRepo repositories.UserRepository, verification VerificationService) UserService {
	return &userService{
		userRepo:     userRepo,
		verification: verification,
	}
}

func (s *userService) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, translateUserError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	update := repositories.ProfileUpdate{
		Name:   trimmed(req.Name),
		Phone:  trimmed(req.Phone),
		Skills: trimmed(req.Skills),
		Bio:    req.Bio,
	}
	if update.Empty() {
		return nil, apperrors.ErrNoProfileFields
	}
	if update.Phone != nil && !validator.IsValidPhone(*update.Phone) {
		return nil, apperrors.ErrInvalidPhone
	}
	if update.Name != nil && *update.Name == "" {
		return nil, apperrors.ValidationError(map[string]string{"name": "name must not be empty"})
	}

	if err := s.userRepo.UpdateProfile(db, userID, update); err != nil {
		return nil, translateUserError(err)
	}

	logger.CtxInfo(ctx, "Profile updated", "user_id", userID)
	return s.GetProfile(ctx, db, userID)
}

func (s *userService) SendVerification(ctx context.Context, db *gorm.DB, user *models.User, t models.VerificationType) (*dto.CodeSentResponse, error) {
	switch t {
	case models.VerificationTypeEmail:
		if user.VerifiedEmail {
			return nil, apperrors.ErrAlreadyVerified
		}
	case models.VerificationTypePhone:
		if user.VerifiedPhone {
			return nil, apperrors.ErrAlreadyVerified
		}
	default:
		return nil, apperrors.NewBadRequestError("Invalid verification type")
	}

	code, err := s.verification.Send(ctx, db, user, t)
	if err != nil {
		return nil, err
	}
	return &dto.CodeSentResponse{
		Message:          "Verification code sent successfully",
		VerificationCode: code,
	}, nil
}

func (s *userService) Verify(ctx context.Context, db *gorm.DB, user *models.User, t models.VerificationType, code string) (*dto.MessageResponse, error) {
	if err := s.verification.VerifyContact(ctx, db, user.ID, t, strings.TrimSpace(code)); err != nil {
		return nil, err
	}

	label := "Email"
	if t == models.VerificationTypePhone {
		label = "Phone"
	}
	return &dto.MessageResponse{Message: label + " verified successfully"}, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
