package services

import (
	"context"
	"strings"

	"gigup_backend/internal/access"
	"gigup_backend/internal/logger"
	"gigup_backend/internal/metrics"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/internal/session"
	"gigup_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetRequestMessage = "If the email exists, reset instructions have been sent"

// SessionStore - операции с сессиями, нужные аккаунтам
type SessionStore interface {
	Establish(ctx context.Context, user *models.User) (string, *session.Session, error)
	Destroy(ctx context.Context, sess *session.Session) error
	DestroyAllForUser(ctx context.Context, userID string) error
}

type AuthService interface {
	Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	// Login возвращает токен сессии для cookie
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (string, *dto.LoginResponse, error)
	Logout(ctx context.Context, sess *session.Session) error
	// CheckSession сбрасывает сессию, если аккаунт удален или не одобрен
	CheckSession(ctx context.Context, db *gorm.DB, sess *session.Session) (*dto.SessionResponse, error)
	ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, db *gorm.DB, req *dto.PasswordResetRequest) (*dto.PasswordResetResponse, error)
	ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error
}

type authService struct {
	userRepo     repositories.UserRepository
	verification VerificationService
	sessions     SessionStore
	gate         *access.Gate
	hashCost     int
}

func NewAuthService(
	userRepo repositories.UserRepository,
	verification VerificationService,
	sessions SessionStore,
	gate *access.Gate,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		verification: verification,
		sessions:     sessions,
		gate:         gate,
		hashCost:     bcrypt.DefaultCost,
	}
}

func (s *authService) Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         models.UserRoleUser,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.StorageFailure(err)
	}

	logger.CtxInfo(ctx, "User signed up", "user_id", user.ID)

	resp := &dto.SignupResponse{
		Message: "User created successfully. Please wait for admin approval.",
		UserID:  user.ID,
	}

	// аккаунт уже создан, код можно запросить повторно
	code, err := s.verification.Send(ctx, db, user, models.VerificationTypeEmail)
	if err != nil {
		logger.CtxWithError(ctx, "Signup verification code not sent", err, "user_id", user.ID)
		return resp, nil
	}
	resp.VerificationCode = code
	return resp, nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (string, *dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.StorageFailure(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsApproved {
		metrics.LoginsTotal.WithLabelValues("pending").Inc()
		return "", nil, apperrors.ErrPendingApproval
	}

	token, _, err := s.sessions.Establish(ctx, user)
	if err != nil {
		return "", nil, apperrors.InternalError(err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID)
	return token, &dto.LoginResponse{
		Message: "Login successful",
		User:    dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	if err := s.sessions.Destroy(ctx, sess); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) CheckSession(ctx context.Context, db *gorm.DB, sess *session.Session) (*dto.SessionResponse, error) {
	if sess == nil {
		return &dto.SessionResponse{Authenticated: false}, nil
	}

	user, err := s.gate.Authenticate(ctx, db, sess)
	switch {
	case err == nil && user.IsApproved:
		return &dto.SessionResponse{Authenticated: true}, nil
	case err == nil:
		// одобрение отозвано
		if dErr := s.sessions.Destroy(ctx, sess); dErr != nil {
			logger.CtxWithError(ctx, "Failed to destroy session", dErr, "user_id", sess.UserID)
		}
		return &dto.SessionResponse{Authenticated: false}, nil
	case apperrors.Is(err, apperrors.ErrAccountNotFound):
		// гейт уже уничтожил сессию
		return &dto.SessionResponse{Authenticated: false}, nil
	default:
		return nil, err
	}
}

func (s *authService) ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return translateUserError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperrors.ErrWrongCurrentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, string(hash)); err != nil {
		return translateUserError(err)
	}

	logger.CtxInfo(ctx, "Password changed", "user_id", userID)
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, db *gorm.DB, req *dto.PasswordResetRequest) (*dto.PasswordResetResponse, error) {
	resp := &dto.PasswordResetResponse{Message: resetRequestMessage}

	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return resp, nil
		}
		return nil, apperrors.StorageFailure(err)
	}

	token, err := s.verification.Send(ctx, db, user, models.VerificationTypePasswordReset)
	if err != nil {
		// ответ не должен раскрывать, существует ли аккаунт
		logger.CtxWithError(ctx, "Password reset token not sent", err, "user_id", user.ID)
		return resp, nil
	}
	resp.ResetToken = token
	return resp, nil
}

func (s *authService) ResetPassword(ctx context.Context, db *gorm.DB, req *dto.ResetPasswordRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return apperrors.InternalError(err)
	}

	userID, err := s.verification.ConsumeReset(ctx, db, req.Token, string(hash))
	if err != nil {
		return err
	}

	if err := s.sessions.DestroyAllForUser(ctx, userID); err != nil {
		logger.CtxWithError(ctx, "Failed to destroy sessions after password reset", err, "user_id", userID)
	}
	logger.CtxInfo(ctx, "Password reset", "user_id", userID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
