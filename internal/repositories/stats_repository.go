package repositories

import (
	"time"

	"gigup_backend/internal/models"

	"gorm.io/gorm"
)

// PlatformStats - сводка для админской панели
type PlatformStats struct {
	TotalUsers          int64 `json:"total_users"`
	VerifiedUsers       int64 `json:"verified_users"`
	TotalGigs           int64 `json:"total_gigs"`
	ActiveGigs          int64 `json:"active_gigs"`
	CompletedGigs       int64 `json:"completed_gigs"`
	TotalContracts      int64 `json:"total_contracts"`
	PendingApplications int64 `json:"pending_applications"`
	PendingApprovals    int64 `json:"pending_approvals"`
	RecentUsers         int64 `json:"recent_users"`
	RecentGigs          int64 `json:"recent_gigs"`
}

type StatsRepository interface {
	Collect(db *gorm.DB, recentSince time.Time) (*PlatformStats, error)
}

type statsRepository struct{}

func NewStatsRepository() StatsRepository {
	return &statsRepository{}
}

func (r *statsRepository) Collect(db *gorm.DB, recentSince time.Time) (*PlatformStats, error) {
	stats := &PlatformStats{}

	counters := []struct {
		target *int64
		query  *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&models.User{})},
		{&stats.VerifiedUsers, db.Model(&models.User{}).Where("verified_email = ?", true)},
		{&stats.TotalGigs, db.Model(&models.Gig{})},
		{&stats.ActiveGigs, db.Model(&models.Gig{}).Where("status = ?", models.GigStatusOpen)},
		{&stats.CompletedGigs, db.Model(&models.Gig{}).Where("status = ?", models.GigStatusCompleted)},
		{&stats.TotalContracts, db.Model(&models.Contract{})},
		{&stats.PendingApplications, db.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusPending)},
		{&stats.PendingApprovals, db.Model(&models.User{}).Where("is_approved = ?", false)},
		{&stats.RecentUsers, db.Model(&models.User{}).Where("created_at >= ?", recentSince)},
		{&stats.RecentGigs, db.Model(&models.Gig{}).Where("created_at >= ?", recentSince)},
	}

	for _, c := range counters {
		if err := c.query.Count(c.target).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}
