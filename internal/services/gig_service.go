package services

import (
	"context"
	"sort"
	"strings"

	"gigup_backend/internal/algorithms"
	"gigup_backend/internal/geo"
	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type GigService interface {
	CreateGig(ctx context.Context, db *gorm.DB, providerID string, req *dto.CreateGigRequest) (*dto.GigCreatedResponse, error)
	ListGigs(ctx context.Context, db *gorm.DB, q *dto.GigListQuery) (*dto.GigListResponse, error)
	GetGig(ctx context.Context, db *gorm.DB, gigID string) (*dto.GigEnvelope, error)
	ListProviderGigs(ctx context.Context, db *gorm.DB, providerID string) (*dto.GigListResponse, error)
	// CompleteGig закрывает гиг в работе вместе с подписанным контрактом
	CompleteGig(ctx context.Context, db *gorm.DB, userID, gigID string) error
	// CancelGig отменяет гиг, отклоняет ожидающие заявки и неподписанные контракты
	CancelGig(ctx context.Context, db *gorm.DB, userID, gigID string) error
}

type gigService struct {
	gigRepo         repositories.GigRepository
	applicationRepo repositories.ApplicationRepository
	contractRepo    repositories.ContractRepository
}

func NewGigService(
	gigRepo repositories.GigRepository,
	applicationRepo repositories.ApplicationRepository,
	contractRepo repositories.ContractRepository,
) GigService {
	return &gigService{
		gigRepo:         gigRepo,
		applicationRepo: applicationRepo,
		contractRepo:    contractRepo,
	}
}

func (s *gigService) CreateGig(ctx context.Context, db *gorm.DB, providerID string, req *dto.CreateGigRequest) (*dto.GigCreatedResponse, error) {
	if req.Pay == nil || req.LocationLat == nil || req.LocationLng == nil {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}
	if !geo.ValidCoordinates(*req.LocationLat, *req.LocationLng) {
		return nil, apperrors.NewBadRequestError("Invalid coordinates")
	}

	gig := &models.Gig{
		ProviderID:      providerID,
		Title:           strings.TrimSpace(req.Title),
		Category:        strings.TrimSpace(req.Category),
		SkillsRequired:  req.SkillsRequired,
		Description:     req.Description,
		DateTime:        req.DateTime.UTC(),
		Duration:        req.Duration,
		Pay:             *req.Pay,
		LocationLat:     *req.LocationLat,
		LocationLng:     *req.LocationLng,
		LocationAddress: req.LocationAddress,
		Status:          models.GigStatusOpen,
	}
	if err := s.gigRepo.Create(db, gig); err != nil {
		return nil, apperrors.StorageFailure(err)
	}

	logger.CtxInfo(ctx, "Gig created", "gig_id", gig.ID, "provider_id", providerID)
	return &dto.GigCreatedResponse{Message: "Gig created successfully", GigID: gig.ID}, nil
}

func (s *gigService) ListGigs(ctx context.Context, db *gorm.DB, q *dto.GigListQuery) (*dto.GigListResponse, error) {
	if q.UserID != "" {
		return s.ListProviderGigs(ctx, db, q.UserID)
	}

	gigs, err := s.gigRepo.FindOpen(db, q.Category)
	if err != nil {
		return nil, apperrors.StorageFailure(err)
	}

	resp := &dto.GigListResponse{Gigs: make([]*dto.GigResponse, 0, len(gigs))}
	if q.Lat == nil || q.Lng == nil {
		for i := range gigs {
			resp.Gigs = append(resp.Gigs, dto.NewGigResponse(&gigs[i]))
		}
		return resp, nil
	}

	maxKm := algorithms.MaxDistanceKm
	if q.MaxDistance != nil {
		maxKm = *q.MaxDistance
	}
	for i := range gigs {
		d := geo.Distance(*q.Lat, *q.Lng, gigs[i].LocationLat, gigs[i].LocationLng)
		if d > maxKm {
			continue
		}
		item := dto.NewGigResponse(&gigs[i])
		rounded := geo.Round2(d)
		item.Distance = &rounded
		resp.Gigs = append(resp.Gigs, item)
	}
	sort.SliceStable(resp.Gigs, func(i, j int) bool {
		return *resp.Gigs[i].Distance < *resp.Gigs[j].Distance
	})
	return resp, nil
}

func (s *gigService) GetGig(ctx context.Context, db *gorm.DB, gigID string) (*dto.GigEnvelope, error) {
	gig, err := s.gigRepo.FindByIDWithProvider(db, gigID)
	if err != nil {
		return nil, translateGigError(err)
	}

	detail := &dto.GigDetailResponse{GigResponse: *dto.NewGigResponse(gig)}
	if gig.Provider != nil {
		detail.ProviderEmail = gig.Provider.Email
		detail.ProviderPhone = gig.Provider.Phone
	}
	return &dto.GigEnvelope{Gig: detail}, nil
}

func (s *gigService) ListProviderGigs(ctx context.Context, db *gorm.DB, providerID string) (*dto.GigListResponse, error) {
	gigs, err := s.gigRepo.FindByProvider(db, providerID)
	if err != nil {
		return nil, apperrors.StorageFailure(err)
	}

	resp := &dto.GigListResponse{Gigs: make([]*dto.GigResponse, 0, len(gigs))}
	for i := range gigs {
		resp.Gigs = append(resp.Gigs, dto.NewGigResponse(&gigs[i]))
	}
	return resp, nil
}

func (s *gigService) CompleteGig(ctx context.Context, db *gorm.DB, userID, gigID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.providerGig(tx, userID, gigID); err != nil {
			return err
		}
		if err := s.gigRepo.Complete(tx, gigID); err != nil {
			return err
		}
		_, err := s.contractRepo.CompleteForGig(tx, gigID)
		return err
	})
	if err != nil {
		return translateGigError(err)
	}

	logger.CtxInfo(ctx, "Gig completed", "gig_id", gigID)
	return nil
}

func (s *gigService) CancelGig(ctx context.Context, db *gorm.DB, userID, gigID string) error {
	var rejected, cancelled int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.providerGig(tx, userID, gigID); err != nil {
			return err
		}
		if err := s.gigRepo.Cancel(tx, gigID); err != nil {
			return err
		}

		var err error
		if rejected, err = s.applicationRepo.RejectPendingForGig(tx, gigID); err != nil {
			return err
		}
		cancelled, err = s.contractRepo.CancelPendingForGig(tx, gigID)
		return err
	})
	if err != nil {
		return translateGigError(err)
	}

	logger.CtxInfo(ctx, "Gig cancelled", "gig_id", gigID, "rejected_applications", rejected, "cancelled_contracts", cancelled)
	return nil
}

// providerGig загружает гиг и проверяет, что userID - его заказчик
func (s *gigService) providerGig(db *gorm.DB, userID, gigID string) (*models.Gig, error) {
	gig, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		return nil, err
	}
	if gig.ProviderID != userID {
		return nil, apperrors.ErrNotGigProvider
	}
	return gig, nil
}
