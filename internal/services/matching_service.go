package services

import (
	"context"
	"sort"

	"gigup_backend/internal/algorithms"
	"gigup_backend/internal/geo"
	"gigup_backend/internal/logger"
	"gigup_backend/internal/metrics"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const DefaultRecommendationLimit = 20

// RankedGig - гиг с расстоянием до исполнителя и баллом совместимости
type RankedGig struct {
	Gig        *models.Gig
	DistanceKm float64
	Score      algorithms.MatchBreakdown
}

// RankGigs отбирает рекомендации с радиусом и лимитом по умолчанию
func RankGigs(seeker *models.User, lat, lng float64, gigs []models.Gig) []RankedGig {
	return rankGigs(seeker, lat, lng, gigs, algorithms.MaxDistanceKm, DefaultRecommendationLimit)
}

// rankGigs: только открытые гиги в радиусе, балл по убыванию, при равенстве id по возрастанию.
// Радиус проверяется по точному расстоянию, в ответ идет округленное.
func rankGigs(seeker *models.User, lat, lng float64, gigs []models.Gig, maxKm float64, limit int) []RankedGig {
	ranked := make([]RankedGig, 0, len(gigs))
	for i := range gigs {
		gig := &gigs[i]
		if !gig.IsOpen() {
			continue
		}
		d := geo.Distance(lat, lng, gig.LocationLat, gig.LocationLng)
		if d > maxKm {
			continue
		}
		ranked = append(ranked, RankedGig{
			Gig:        gig,
			DistanceKm: geo.Round2(d),
			Score:      algorithms.ScoreGig(seeker, gig, d),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score.Total != ranked[j].Score.Total {
			return ranked[i].Score.Total > ranked[j].Score.Total
		}
		return ranked[i].Gig.ID < ranked[j].Gig.ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

type MatchingService interface {
	Recommend(ctx context.Context, db *gorm.DB, seekerID string, lat, lng float64) (*dto.RecommendationListResponse, error)
}

type matchingService struct {
	userRepo      repositories.UserRepository
	gigRepo       repositories.GigRepository
	maxDistanceKm float64
	limit         int
}

func NewMatchingService(
	userRepo repositories.UserRepository,
	gigRepo repositories.GigRepository,
	maxDistanceKm float64,
	limit int,
) MatchingService {
	if maxDistanceKm <= 0 {
		maxDistanceKm = algorithms.MaxDistanceKm
	}
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	return &matchingService{
		userRepo:      userRepo,
		gigRepo:       gigRepo,
		maxDistanceKm: maxDistanceKm,
		limit:         limit,
	}
}

func (s *matchingService) Recommend(ctx context.Context, db *gorm.DB, seekerID string, lat, lng float64) (*dto.RecommendationListResponse, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, apperrors.ErrLocationRequired
	}

	seeker, err := s.userRepo.FindByID(db, seekerID)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, translateUserError(err)
	}

	gigs, err := s.gigRepo.FindOpen(db, "")
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, apperrors.StorageFailure(err)
	}

	ranked := rankGigs(seeker, lat, lng, gigs, s.maxDistanceKm, s.limit)

	resp := &dto.RecommendationListResponse{
		Recommendations: make([]*dto.RecommendationResponse, 0, len(ranked)),
	}
	for _, r := range ranked {
		gigResp := dto.NewGigResponse(r.Gig)
		distance := r.DistanceKm
		gigResp.Distance = &distance
		resp.Recommendations = append(resp.Recommendations, &dto.RecommendationResponse{
			GigResponse: *gigResp,
			MatchScore:  r.Score.Total,
			Breakdown:   r.Score,
		})
	}

	result := "ok"
	if len(ranked) == 0 {
		result = "empty"
	}
	metrics.RecommendationsTotal.WithLabelValues(result).Inc()
	metrics.RecommendedGigs.Observe(float64(len(ranked)))
	logger.CtxDebug(ctx, "Recommendations computed", "seeker_id", seekerID, "candidates", len(gigs), "returned", len(ranked))
	return resp, nil
}
