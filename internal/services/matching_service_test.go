package services

import (
	"fmt"
	"testing"

	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/testutil"
	"gigup_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seekerProfile() *models.User {
	return &models.User{
		BaseModel:    models.BaseModel{ID: "seeker"},
		Skills:       "plumbing,electrical",
		Rating:       4.0,
		TotalRatings: 3,
	}
}

func openGig(id string, lat, lng float64, skills string) models.Gig {
	return models.Gig{
		BaseModel:      models.BaseModel{ID: id},
		SkillsRequired: skills,
		LocationLat:    lat,
		LocationLng:    lng,
		Status:         models.GigStatusOpen,
	}
}

func TestRankGigs_NearbyPlumbingGig(t *testing.T) {
	gigs := []models.Gig{openGig("g1", 40.05, -74.05, "plumbing")}

	ranked := RankGigs(seekerProfile(), 40.0, -74.0, gigs)

	require.Len(t, ranked, 1)
	assert.InDelta(t, 7.0, ranked[0].DistanceKm, 0.01)
	assert.Equal(t, 50.0, ranked[0].Score.Skills)
	assert.Equal(t, 20.0, ranked[0].Score.Availability)
	assert.Equal(t, 8.0, ranked[0].Score.Rating)
	assert.InDelta(t, 94.0, ranked[0].Score.Total, 0.05)
}

func TestRankGigs_ExcludesGigsBeyondRadius(t *testing.T) {
	gigs := []models.Gig{
		// ~40 км к северу, навыки совпадают полностью
		openGig("far", 40.36, -74.0, "plumbing,electrical"),
		openGig("near", 40.01, -74.0, "cooking"),
	}

	ranked := RankGigs(seekerProfile(), 40.0, -74.0, gigs)

	require.Len(t, ranked, 1)
	assert.Equal(t, "near", ranked[0].Gig.ID)
}

func TestRankGigs_SkipsNonOpenGigs(t *testing.T) {
	assigned := openGig("assigned", 40.0, -74.0, "plumbing")
	assigned.Status = models.GigStatusAssigned
	gigs := []models.Gig{assigned, openGig("open", 40.0, -74.0, "plumbing")}

	ranked := RankGigs(seekerProfile(), 40.0, -74.0, gigs)

	require.Len(t, ranked, 1)
	assert.Equal(t, "open", ranked[0].Gig.ID)
}

func TestRankGigs_SortsDescendingAndCapsAtLimit(t *testing.T) {
	var gigs []models.Gig
	for i := 0; i < 25; i++ {
		// чем дальше, тем ниже балл за расстояние
		gigs = append(gigs, openGig(fmt.Sprintf("g%02d", i), 40.0+float64(i)*0.01, -74.0, "plumbing"))
	}

	ranked := RankGigs(seekerProfile(), 40.0, -74.0, gigs)

	require.Len(t, ranked, DefaultRecommendationLimit)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score.Total, ranked[i].Score.Total)
	}
	assert.Equal(t, "g00", ranked[0].Gig.ID)
}

func TestRankGigs_TiesBrokenByGigID(t *testing.T) {
	gigs := []models.Gig{
		openGig("c", 40.0, -74.0, ""),
		openGig("a", 40.0, -74.0, ""),
		openGig("b", 40.0, -74.0, ""),
	}

	ranked := RankGigs(seekerProfile(), 40.0, -74.0, gigs)

	require.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].Gig.ID)
	assert.Equal(t, "b", ranked[1].Gig.ID)
	assert.Equal(t, "c", ranked[2].Gig.ID)
}

func TestRankGigs_Empty(t *testing.T) {
	assert.Empty(t, RankGigs(seekerProfile(), 40.0, -74.0, nil))
}

func TestMatchingService_Recommend(t *testing.T) {
	db := testutil.NewTestDB(t)
	provider := testutil.CreateUser(t, db, "provider", testutil.Approved())
	seeker := testutil.CreateUser(t, db, "seeker",
		testutil.Approved(),
		testutil.WithSkills("plumbing,electrical"),
		testutil.WithRating(4.0, 3),
	)
	near := createGig(t, db, provider.ID)
	createGig(t, db, provider.ID, atLocation(40.36, -74.0))
	createGig(t, db, provider.ID, withStatus(models.GigStatusAssigned, &seeker.ID))

	svc := NewMatchingService(repositories.NewUserRepository(), repositories.NewGigRepository(), 35, 20)
	resp, err := svc.Recommend(testContext(), db, seeker.ID, 40.0, -74.0)
	require.NoError(t, err)

	require.Len(t, resp.Recommendations, 1)
	rec := resp.Recommendations[0]
	assert.Equal(t, near.ID, rec.ID)
	assert.Equal(t, provider.Name, rec.ProviderName)
	require.NotNil(t, rec.Distance)
	assert.InDelta(t, 7.0, *rec.Distance, 0.01)
	assert.InDelta(t, 94.0, rec.MatchScore, 0.05)
}

func TestMatchingService_RecommendUnknownSeeker(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewMatchingService(repositories.NewUserRepository(), repositories.NewGigRepository(), 0, 0)

	_, err := svc.Recommend(testContext(), db, "missing", 40.0, -74.0)
	assert.True(t, apperrors.Is(err, apperrors.ErrUserNotFound))
}

func TestMatchingService_RecommendRejectsBadCoordinates(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewMatchingService(repositories.NewUserRepository(), repositories.NewGigRepository(), 0, 0)

	_, err := svc.Recommend(testContext(), db, "any", 91, 0)
	assert.True(t, apperrors.Is(err, apperrors.ErrLocationRequired))
}
