package services

import (
	"context"
	"strings"
	"time"

	"gigup_backend/internal/logger"
	"gigup_backend/internal/models"
	"gigup_backend/internal/repositories"
	"gigup_backend/internal/services/dto"
	"gigup_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContractService interface {
	CreateContract(ctx context.Context, db *gorm.DB, providerID string, req *dto.CreateContractRequest) (*dto.ContractCreatedResponse, error)
	// SignContract записывает подпись стороны. Когда обе подписи на месте,
	// контракт становится signed, а гиг переходит в работу
	SignContract(ctx context.Context, db *gorm.DB, userID, contractID, signature string) (*dto.SignContractResponse, error)
	GetContract(ctx context.Context, db *gorm.DB, userID, contractID string) (*dto.ContractEnvelope, error)
	ListForUser(ctx context.Context, db *gorm.DB, userID string) (*dto.ContractListResponse, error)
}

type contractService struct {
	contractRepo repositories.ContractRepository
	gigRepo      repositories.GigRepository
	userRepo     repositories.UserRepository
	now          func() time.Time
}

func NewContractService(
	contractRepo repositories.ContractRepository,
	gigRepo repositories.GigRepository,
	userRepo repositories.UserRepository,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		gigRepo:      gigRepo,
		userRepo:     userRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *contractService) CreateContract(ctx context.Context, db *gorm.DB, providerID string, req *dto.CreateContractRequest) (*dto.ContractCreatedResponse, error) {
	date, err := time.Parse(dto.ContractDateLayout, req.Date)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"date": "date must be in YYYY-MM-DD format"})
	}
	if req.Pay == nil {
		return nil, apperrors.NewBadRequestError("Missing required fields")
	}
	if req.SeekerID == providerID {
		return nil, apperrors.ErrSelfContract
	}

	gig, err := s.gigRepo.FindByID(db, req.GigID)
	if err != nil {
		return nil, translateGigError(err)
	}
	if gig.ProviderID != providerID {
		return nil, apperrors.ErrNotGigProvider
	}
	if gig.Status != models.GigStatusOpen && gig.Status != models.GigStatusAssigned {
		return nil, apperrors.ErrGigInvalidTransition
	}
	if gig.SeekerID != nil && *gig.SeekerID != req.SeekerID {
		return nil, apperrors.ErrSeekerMismatch
	}

	if _, err := s.userRepo.FindByID(db, req.SeekerID); err != nil {
		return nil, translateUserError(err)
	}

	contract := &models.Contract{
		GigID:      gig.ID,
		ProviderID: providerID,
		SeekerID:   req.SeekerID,
		Terms:      strings.TrimSpace(req.Terms),
		Pay:        *req.Pay,
		Hours:      req.Hours,
		Date:       datatypes.Date(date),
	}
	if err := s.contractRepo.Create(db, contract); err != nil {
		return nil, apperrors.StorageFailure(err)
	}

	logger.CtxInfo(ctx, "Contract created", "contract_id", contract.ID, "gig_id", gig.ID)
	return &dto.ContractCreatedResponse{Message: "Contract created", ContractID: contract.ID}, nil
}

func (s *contractService) SignContract(ctx context.Context, db *gorm.DB, userID, contractID, signature string) (*dto.SignContractResponse, error) {
	status := models.ContractStatusPending
	err := db.Transaction(func(tx *gorm.DB) error {
		contract, err := s.contractRepo.FindByID(tx, contractID)
		if err != nil {
			return err
		}
		if !contract.IsParty(userID) {
			return apperrors.ErrNotAParty
		}
		if contract.Status != models.ContractStatusPending {
			return apperrors.ErrContractNotPending
		}

		sign := s.contractRepo.SignAsSeeker
		if contract.ProviderID == userID {
			sign = s.contractRepo.SignAsProvider
		}
		written, err := sign(tx, contract.ID, signature)
		if err != nil {
			return err
		}
		if !written {
			return apperrors.ErrAlreadySigned
		}

		// переход выполняет ровно один из двух подписантов
		signed, err := s.contractRepo.MarkSignedIfComplete(tx, contract.ID, s.now())
		if err != nil {
			return err
		}
		if !signed {
			return nil
		}
		status = models.ContractStatusSigned
		return s.gigRepo.StartWork(tx, contract.GigID, contract.SeekerID)
	})
	if err != nil {
		return nil, translateContractError(err)
	}

	logger.CtxInfo(ctx, "Contract signed", "contract_id", contractID, "user_id", userID, "status", status)
	return &dto.SignContractResponse{Message: "Contract signed successfully", Status: status}, nil
}

func (s *contractService) GetContract(ctx context.Context, db *gorm.DB, userID, contractID string) (*dto.ContractEnvelope, error) {
	contract, err := s.contractRepo.FindByID(db, contractID)
	if err != nil {
		return nil, translateContractError(err)
	}
	if !contract.IsParty(userID) {
		return nil, apperrors.ErrNotAParty
	}
	return &dto.ContractEnvelope{Contract: dto.NewContractResponse(contract)}, nil
}

func (s *contractService) ListForUser(ctx context.Context, db *gorm.DB, userID string) (*dto.ContractListResponse, error) {
	contracts, err := s.contractRepo.FindForUser(db, userID)
	if err != nil {
		return nil, apperrors.StorageFailure(err)
	}

	resp := &dto.ContractListResponse{Contracts: make([]*dto.ContractResponse, 0, len(contracts))}
	for i := range contracts {
		resp.Contracts = append(resp.Contracts, dto.NewContractResponse(&contracts[i]))
	}
	return resp, nil
}
