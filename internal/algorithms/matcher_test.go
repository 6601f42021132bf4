package algorithms

import (
	"testing"

	"gigup_backend/internal/geo"
	"gigup_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func seeker(skills string, rating float64, total int) *models.User {
	return &models.User{Skills: skills, Rating: rating, TotalRatings: total}
}

func gig(skills string, status models.GigStatus) *models.Gig {
	return &models.Gig{SkillsRequired: skills, Status: status}
}

func TestScoreGig_EmptySkillsGiveNeutralScore(t *testing.T) {
	b := ScoreGig(seeker("", 0, 0), gig("", models.GigStatusOpen), 100)
	assert.Equal(t, NeutralSkillsScore, b.Skills)

	b = ScoreGig(seeker("plumbing", 0, 0), gig("", models.GigStatusOpen), 100)
	assert.Equal(t, NeutralSkillsScore, b.Skills)

	b = ScoreGig(seeker(" , ", 0, 0), gig("plumbing", models.GigStatusOpen), 100)
	assert.Equal(t, NeutralSkillsScore, b.Skills)
}

func TestScoreGig_PerfectMatchIs100(t *testing.T) {
	b := ScoreGig(seeker("Plumbing, Electrical", 5.0, 2), gig("plumbing,electrical", models.GigStatusOpen), 0)
	assert.Equal(t, 50.0, b.Skills)
	assert.Equal(t, 20.0, b.Distance)
	assert.Equal(t, 20.0, b.Availability)
	assert.Equal(t, 10.0, b.Rating)
	assert.Equal(t, 100.0, b.Total)
	assert.Equal(t, []string{"electrical", "plumbing"}, b.MatchedSkills)
}

func TestScoreGig_PartialSkillOverlap(t *testing.T) {
	b := ScoreGig(seeker("plumbing", 0, 0), gig("plumbing,electrical,painting,tiling", models.GigStatusOpen), 35)
	assert.Equal(t, 12.5, b.Skills)
}

func TestScoreGig_DistanceBoundary(t *testing.T) {
	b := ScoreGig(seeker("", 0, 0), gig("", models.GigStatusOpen), MaxDistanceKm)
	assert.Equal(t, 0.0, b.Distance)

	b = ScoreGig(seeker("", 0, 0), gig("", models.GigStatusOpen), 40)
	assert.Equal(t, 0.0, b.Distance)

	b = ScoreGig(seeker("", 0, 0), gig("", models.GigStatusOpen), 17.5)
	assert.Equal(t, 10.0, b.Distance)
}

func TestScoreGig_AvailabilityOnlyForOpen(t *testing.T) {
	for _, status := range []models.GigStatus{models.GigStatusAssigned, models.GigStatusInProgress, models.GigStatusCompleted, models.GigStatusCancelled} {
		assert.Equal(t, 0.0, ScoreGig(seeker("", 0, 0), gig("", status), 0).Availability, status)
	}
}

func TestScoreGig_RatingCappedAndRequiresRatings(t *testing.T) {
	assert.Equal(t, 10.0, ScoreGig(seeker("", 7.5, 3), gig("", models.GigStatusOpen), 0).Rating)
	assert.Equal(t, 8.0, ScoreGig(seeker("", 4.0, 3), gig("", models.GigStatusOpen), 0).Rating)
	assert.Equal(t, 0.0, ScoreGig(seeker("", 4.0, 0), gig("", models.GigStatusOpen), 0).Rating)
}

func TestScoreGig_AlwaysWithinBounds(t *testing.T) {
	skills := []string{"", "a", "a,b", "b,c,d"}
	distances := []float64{0, 1, 10, 34.99, 35, 36, 1000}
	ratings := []float64{0, 1, 4.9, 5, 50}
	for _, s := range skills {
		for _, g := range skills {
			for _, d := range distances {
				for _, r := range ratings {
					b := ScoreGig(seeker(s, r, 1), gig(g, models.GigStatusOpen), d)
					assert.GreaterOrEqual(t, b.Total, 0.0)
					assert.LessOrEqual(t, b.Total, MaxScore)
				}
			}
		}
	}
}

func TestScoreGig_NearbyPlumberScenario(t *testing.T) {
	s := seeker("plumbing,electrical", 4.0, 3)
	g := gig("plumbing", models.GigStatusOpen)
	d := geo.Distance(40.0, -74.0, 40.05, -74.05)

	b := ScoreGig(s, g, d)
	assert.Equal(t, 50.0, b.Skills)
	assert.InDelta(t, 16.0, b.Distance, 0.01)
	assert.Equal(t, 20.0, b.Availability)
	assert.Equal(t, 8.0, b.Rating)
	assert.InDelta(t, 94.0, b.Total, 0.01)
}

func TestParseSkills(t *testing.T) {
	set := ParseSkills(" Plumbing ,ELECTRICAL,,plumbing")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "plumbing")
	assert.Contains(t, set, "electrical")
	assert.Empty(t, ParseSkills(""))
}
