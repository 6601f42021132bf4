package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"gigup_backend/internal/delivery"
	"gigup_backend/internal/logger"
	"gigup_backend/internal/metrics"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	contactCodeBytes = 8
	resetTokenBytes  = 32
)

type VerificationService interface {
	// Issue гасит прежние неиспользованные коды пары (user, type) и создает новый
	Issue(ctx context.Context, db *gorm.DB, userID string, t models.VerificationType) (string, error)
	// Send выпускает код и передает его доставке. Возвращает код только
	// при echo-доставке, иначе пустую строку.
	Send(ctx context.Context, db *gorm.DB, user *models.User, t models.VerificationType) (string, error)
	Consume(ctx context.Context, db *gorm.DB, userID string, t models.VerificationType, code string) error
	// VerifyContact гасит код и выставляет флаг верификации в одной транзакции
	VerifyContact(ctx context.Context, db *gorm.DB, userID string, t models.VerificationType, code string) error
	// ConsumeReset гасит токен сброса и меняет хеш пароля атомарно, возвращает id владельца
	ConsumeReset(ctx context.Context, db *gorm.DB, token, passwordHash string) (string, error)
	PurgeExpired(ctx context.Context, db *gorm.DB, olderThan time.Duration) (int64, error)
}

type verificationService struct {
	codeRepo    repositories.VerificationRepository
	userRepo    repositories.UserRepository
	deliverer   delivery.Deliverer
	codeExpiry  time.Duration
	resetExpiry time.Duration
	now         func() time.Time
}

func NewVerificationService(
	codeRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	deliverer delivery.Deliverer,
	codeExpiry, resetExpiry time.Duration,
) VerificationService {
	return &verificationService{
		codeRepo:    codeRepo,
		userRepo:    userRepo,
		deliverer:   deliverer,
		codeExpiry:  codeExpiry,
		resetExpiry: resetExpiry,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *verificationService) Issue(ctx context.Context, db *gorm.DB, userID string, t models.VerificationType) (string, error) {
	if !t.Valid() {
		return "", apperrors.NewBadRequestError("Unknown verification type")
	}

	size, ttl := contactCodeBytes, s.codeExpiry
	if t == models.VerificationTypePasswordReset {
		size, ttl = resetTokenBytes, s.resetExpiry
	}

	code, err := generateCode(size)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	record := &models.VerificationCode{
		UserID:    userID,
		Code:      code,
		Type:      t,
		ExpiresAt: s.now().Add(ttl),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.codeRepo.LockOwner(tx, userID); err != nil {
			return err
		}
		if _, err := s.codeRepo.InvalidateActive(tx, userID, t); err != nil {
			return err
		}
		return s.codeRepo.Create(tx, record)
	})
	if apperrors.Is(err, repositories.ErrUserNotFound) {
		return "", apperrors.ErrAccountNotFound
	}
	if err != nil {
		return "", apperrors.StorageFailure(err)
	}

	metrics.VerificationCodesTotal.WithLabelValues(string(t), "issued").Inc()
	logger.CtxDebug(ctx, "Verification code issued", "user_id", userID, "type", t)
	return code, nil
}

func (s *verificationService) Send(ctx context.Context, db *gorm.DB, user *models.User, t models.VerificationType) (string, error) {
	code, err := s.Issue(ctx, db, user.ID, t)
	if err != nil {
		return "", err
	}

	if err := s.deliverer.Deliver(ctx, user, code, t); err != nil {
		logger.CtxWithError(ctx, "Verification code delivery failed", err, "user_id", user.ID, "type", t)
		return "", apperrors.ErrDeliveryFailed.WithError(err)
	}

	if _, echo := delivery.AsEchoer(s.deliverer); echo {
		return code, nil
	}
	return "", nil
}

func (s *verificationService) Consume(ctx context.Context, db *gorm.DB, userID string, t models.VerificationType, code string) error {
	ok, err := s.codeRepo.Consume(db, userID, t, code, s.now())
	if err != nil {
		return apperrors.StorageFailure(err)
	}
	if !ok {
		metrics.VerificationCodesTotal.WithLabelValues(string(t), "rejected").Inc()
		return apperrors.ErrInvalidOrExpiredCode
	}
	metrics.VerificationCodesTotal.WithLabelValues(string(t), "consumed").Inc()
	return nil
}

func (s *verificationService) VerifyContact(ctx context.Context, db *gorm.DB, userID string, t models.VerificationType, code string) error {
	var mark func(*gorm.DB, string) error
	switch t {
	case models.VerificationTypeEmail:
		mark = s.userRepo.MarkEmailVerified
	case models.VerificationTypePhone:
		mark = s.userRepo.MarkPhoneVerified
	default:
		return apperrors.NewBadRequestError("Unknown verification type")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.Consume(ctx, tx, userID, t, code); err != nil {
			return err
		}
		return mark(tx, userID)
	})
	if err != nil {
		return translateUserError(err)
	}

	logger.CtxInfo(ctx, "Contact verified", "user_id", userID, "type", t)
	return nil
}

func (s *verificationService) ConsumeReset(ctx context.Context, db *gorm.DB, token, passwordHash string) (string, error) {
	var userID string
	err := db.Transaction(func(tx *gorm.DB) error {
		now := s.now()
		record, err := s.codeRepo.FindActiveByCode(tx, models.VerificationTypePasswordReset, token, now)
		if err != nil {
			if apperrors.Is(err, repositories.ErrVerificationCodeNotFound) {
				metrics.VerificationCodesTotal.WithLabelValues(string(models.VerificationTypePasswordReset), "rejected").Inc()
				return apperrors.ErrInvalidOrExpiredCode
			}
			return err
		}

		ok, err := s.codeRepo.ConsumeByID(tx, record.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			// гонка: токен погасил параллельный запрос
			return apperrors.ErrInvalidOrExpiredCode
		}

		if err := s.userRepo.UpdatePassword(tx, record.UserID, passwordHash); err != nil {
			return err
		}
		userID = record.UserID
		return nil
	})
	if err != nil {
		return "", translateUserError(err)
	}

	metrics.VerificationCodesTotal.WithLabelValues(string(models.VerificationTypePasswordReset), "consumed").Inc()
	return userID, nil
}

func (s *verificationService) PurgeExpired(ctx context.Context, db *gorm.DB, olderThan time.Duration) (int64, error) {
	purged, err := s.codeRepo.PurgeStale(db, s.now().Add(-olderThan))
	if err != nil {
		return 0, apperrors.StorageFailure(err)
	}
	return purged, nil
}

// generateCode - url-safe base64 от size случайных байт
func generateCode(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
