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

type ApplicationService interface {
	Apply(ctx context.Context, db *gorm.DB, seekerID, gigID string, req *dto.CreateApplicationRequest) (*dto.ApplicationCreatedResponse, error)
	ListForGig(ctx context.Context, db *gorm.DB, userID, gigID string) (*dto.ApplicationListResponse, error)
	ListForSeeker(ctx context.Context, db *gorm.DB, seekerID string) (*dto.ApplicationListResponse, error)
	// Accept принимает заявку, отклоняет остальные и назначает исполнителя одной транзакцией
	Accept(ctx context.Context, db *gorm.DB, userID, applicationID string) error
	Reject(ctx context.Context, db *gorm.DB, userID, applicationID string) error
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	gigRepo         repositories.GigRepository
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	gigRepo repositories.GigRepository,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		gigRepo:         gigRepo,
	}
}

func (s *applicationService) Apply(ctx context.Context, db *gorm.DB, seekerID, gigID string, req *dto.CreateApplicationRequest) (*dto.ApplicationCreatedResponse, error) {
	gig, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		return nil, translateGigError(err)
	}
	if gig.ProviderID == seekerID {
		return nil, apperrors.ErrOwnGig
	}
	if !gig.IsOpen() {
		return nil, apperrors.ErrGigNotOpen
	}

	app := &models.Application{
		GigID:    gigID,
		SeekerID: seekerID,
		Message:  strings.TrimSpace(req.Message),
	}
	if err := s.applicationRepo.Create(db, app); err != nil {
		return nil, translateApplicationError(err)
	}

	logger.CtxInfo(ctx, "Application submitted", "application_id", app.ID, "gig_id", gigID)
	return &dto.ApplicationCreatedResponse{
		Message:       "Application submitted successfully",
		ApplicationID: app.ID,
	}, nil
}

func (s *applicationService) ListForGig(ctx context.Context, db *gorm.DB, userID, gigID string) (*dto.ApplicationListResponse, error) {
	gig, err := s.gigRepo.FindByID(db, gigID)
	if err != nil {
		return nil, translateGigError(err)
	}
	if gig.ProviderID != userID {
		return nil, apperrors.ErrNotGigProvider
	}

	apps, err := s.applicationRepo.FindByGig(db, gigID)
	if err != nil {
		return nil, apperrors.StorageFailure(err)
	}
	return toApplicationList(apps), nil
}

func (s *applicationService) ListForSeeker(ctx context.Context, db *gorm.DB, seekerID string) (*dto.ApplicationListResponse, error) {
	apps, err := s.applicationRepo.FindBySeeker(db, seekerID)
	if err != nil {
		return nil, apperrors.StorageFailure(err)
	}
	return toApplicationList(apps), nil
}

func (s *applicationService) Accept(ctx context.Context, db *gorm.DB, userID, applicationID string) error {
	var rejected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		app, err := s.providerApplication(tx, userID, applicationID)
		if err != nil {
			return err
		}
		if err := s.applicationRepo.Accept(tx, app.ID); err != nil {
			return err
		}
		if rejected, err = s.applicationRepo.RejectSiblings(tx, app.GigID, app.ID); err != nil {
			return err
		}
		if err := s.gigRepo.Assign(tx, app.GigID, app.SeekerID); err != nil {
			if apperrors.Is(err, repositories.ErrGigStatusConflict) {
				return apperrors.ErrGigNotOpen
			}
			return err
		}
		return nil
	})
	if err != nil {
		return translateApplicationError(err)
	}

	logger.CtxInfo(ctx, "Application accepted", "application_id", applicationID, "rejected_siblings", rejected)
	return nil
}

func (s *applicationService) Reject(ctx context.Context, db *gorm.DB, userID, applicationID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		app, err := s.providerApplication(tx, userID, applicationID)
		if err != nil {
			return err
		}
		return s.applicationRepo.Reject(tx, app.ID)
	})
	if err != nil {
		return translateApplicationError(err)
	}
	return nil
}

// providerApplication загружает заявку вместе с гигом и проверяет права заказчика
func (s *applicationService) providerApplication(db *gorm.DB, userID, applicationID string) (*models.Application, error) {
	app, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Gig == nil {
		return nil, repositories.ErrGigNotFound
	}
	if app.Gig.ProviderID != userID {
		return nil, apperrors.ErrNotGigProvider
	}
	return app, nil
}

func toApplicationList(apps []models.Application) *dto.ApplicationListResponse {
	resp := &dto.ApplicationListResponse{Applications: make([]*dto.ApplicationResponse, 0, len(apps))}
	for i := range apps {
		resp.Applications = append(resp.Applications, dto.NewApplicationResponse(&apps[i]))
	}
	return resp
}
