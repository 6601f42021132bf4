package services

import (
	"context"
	"time"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const recentActivityWindow = 7 * 24 * time.Hour

type AdminService interface {
	ListUsers(ctx context.Context, db *gorm.DB) (*dto.UserListResponse, error)
	SetApproval(ctx context.Context, db *gorm.DB, adminID, userID string, approved bool) (*dto.MessageResponse, error)
	GetStats(ctx context.Context, db *gorm.DB) (*repositories.PlatformStats, error)
}

type adminService struct {
	userRepo  repositories.UserRepository
	statsRepo repositories.StatsRepository
	now       func() time.Time
}

func NewAdminService(userRepo repositories.UserRepository, statsRepo repositories.StatsRepository) AdminService {
	return &adminService{
		userRepo:  userRepo,
		statsRepo: statsRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *adminService) ListUsers(ctx context.Context, db *gorm.DB) (*dto.UserListResponse, error) {
	users, err := s.userRepo.List(db)
	if err != nil {
		return nil, apperrors.StorageFailure(err)
	}

	resp := &dto.UserListResponse{Users: make([]*dto.UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *adminService) SetApproval(ctx context.Context, db *gorm.DB, adminID, userID string, approved bool) (*dto.MessageResponse, error) {
	if err := s.userRepo.SetApproved(db, userID, approved); err != nil {
		return nil, translateUserError(err)
	}

	status := "approved"
	if !approved {
		status = "revoked"
	}
	logger.CtxInfo(ctx, "User approval changed", "admin_id", adminID, "user_id", userID, "status", status)
	return &dto.MessageResponse{Message: "User " + status + " successfully"}, nil
}

func (s *adminService) GetStats(ctx context.Context, db *gorm.DB) (*repositories.PlatformStats, error) {
	stats, err := s.statsRepo.Collect(db, s.now().Add(-recentActivityWindow))
	if err != nil {
		return nil, apperrors.StorageFailure(err)
	}
	return stats, nil
}
