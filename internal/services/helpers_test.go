package services

import (
	"context"
	"testing"
	"time"

	"gigup_backend/internal/delivery"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type gigOption func(*models.Gig)

func atLocation(lat, lng float64) gigOption {
	return func(g *models.Gig) {
		g.LocationLat = lat
		g.LocationLng = lng
	}
}

func withStatus(status models.GigStatus, seekerID *string) gigOption {
	return func(g *models.Gig) {
		g.Status = status
		g.SeekerID = seekerID
	}
}

func createGig(t *testing.T, db *gorm.DB, providerID string, opts ...gigOption) *models.Gig {
	t.Helper()
	gig := &models.Gig{
		ProviderID:     providerID,
		Title:          "Fix sink",
		Category:       "home",
		SkillsRequired: "plumbing",
		DateTime:       time.Now().Add(24 * time.Hour).UTC(),
		Pay:            80,
		LocationLat:    40.05,
		LocationLng:    -74.05,
	}
	for _, opt := range opts {
		opt(gig)
	}
	require.NoError(t, repositories.NewGigRepository().Create(db, gig))
	return gig
}

func newTestVerificationService(d delivery.Deliverer) *verificationService {
	return NewVerificationService(
		repositories.NewVerificationRepository(),
		repositories.NewUserRepository(),
		d,
		24*time.Hour,
		time.Hour,
	).(*verificationService)
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func testContext() context.Context {
	return context.Background()
}
