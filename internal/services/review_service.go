package services

import (
	"context"
	"strings"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// CreateReview оставляет отзыв второй стороне завершенного гига и пересчитывает ее рейтинг
	CreateReview(ctx context.Context, db *gorm.DB, reviewerID, gigID string, req *dto.CreateReviewRequest) (*dto.ReviewCreatedResponse, error)
	ListForUser(ctx context.Context, db *gorm.DB, userID string) (*dto.ReviewListResponse, error)
}

type reviewService struct {
	reviewRepo repositories.ReviewRepository
	gigRepo    repositories.GigRepository
	userRepo   repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	gigRepo repositories.GigRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		gigRepo:    gigRepo,
		userRepo:   userRepo,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, db *gorm.DB, reviewerID, gigID string, req *dto.CreateReviewRequest) (*dto.ReviewCreatedResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.ValidationError(map[string]string{"rating": "rating must be between 1 and 5"})
	}

	review := &models.Review{
		ReviewerID: reviewerID,
		GigID:      gigID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		gig, err := s.gigRepo.FindByID(tx, gigID)
		if err != nil {
			return err
		}
		if gig.Status != models.GigStatusCompleted || gig.SeekerID == nil || !gig.IsParty(reviewerID) {
			return apperrors.ErrReviewNotAllowed
		}

		review.ReviewedID = *gig.SeekerID
		if reviewerID == *gig.SeekerID {
			review.ReviewedID = gig.ProviderID
		}

		if err := s.reviewRepo.Create(tx, review); err != nil {
			if apperrors.Is(err, repositories.ErrReviewExists) {
				return apperrors.ErrDuplicateReview
			}
			return err
		}
		return s.userRepo.AddRating(tx, review.ReviewedID, review.Rating)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, translateGigError(err)
	}

	logger.CtxInfo(ctx, "Review created", "review_id", review.ID, "reviewed_id", review.ReviewedID, "rating", review.Rating)
	return &dto.ReviewCreatedResponse{Message: "Review submitted successfully", ReviewID: review.ID}, nil
}

func (s *reviewService) ListForUser(ctx context.Context, db *gorm.DB, userID string) (*dto.ReviewListResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, translateUserError(err)
	}

	reviews, err := s.reviewRepo.FindByReviewed(db, userID)
	if err != nil {
		return nil, apperrors.StorageFailure(err)
	}

	resp := &dto.ReviewListResponse{Reviews: make([]*dto.ReviewResponse, 0, len(reviews))}
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, dto.NewReviewResponse(&reviews[i]))
	}
	return resp, nil
}
