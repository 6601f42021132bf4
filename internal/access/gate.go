// Package access проверяет права на основе разрешенной сессии.
package access

import (
	"context"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/session"
	"gigup_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SessionDestroyer - часть session.Manager, нужная гейту
type SessionDestroyer interface {
	Destroy(ctx context.Context, sess *session.Session) error
}

type Gate struct {
	userRepo repositories.UserRepository
	sessions SessionDestroyer
}

func NewGate(userRepo repositories.UserRepository, sessions SessionDestroyer) *Gate {
	return &Gate{userRepo: userRepo, sessions: sessions}
}

// Authenticate разрешает сессию в профиль без проверки одобрения.
// Сессия без аккаунта уничтожается.
func (g *Gate) Authenticate(ctx context.Context, db *gorm.DB, sess *session.Session) (*models.User, error) {
	if sess == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := g.userRepo.FindByID(db, sess.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			if dErr := g.sessions.Destroy(ctx, sess); dErr != nil {
				logger.CtxWithError(ctx, "Failed to destroy stale session", dErr, "session_id", sess.ID)
			}
			logger.CtxWarn(ctx, "Session refers to a missing account", "user_id", sess.UserID)
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.StorageFailure(err)
	}
	return user, nil
}

func (g *Gate) RequireApproved(ctx context.Context, db *gorm.DB, sess *session.Session) (*models.User, error) {
	user, err := g.Authenticate(ctx, db, sess)
	if err != nil {
		return nil, err
	}
	if !user.IsApproved {
		return nil, apperrors.ErrPendingApproval
	}
	return user, nil
}

func (g *Gate) RequireAdmin(ctx context.Context, db *gorm.DB, sess *session.Session) (*models.User, error) {
	user, err := g.Authenticate(ctx, db, sess)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	return user, nil
}
