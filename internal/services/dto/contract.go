package dto

import (
	"time"

	"gigup_backend/internal/models"
)

// ContractDateLayout - формат календарной даты контракта
const ContractDateLayout = "2006-01-02"

type CreateContractRequest struct {
	GigID    string   `json:"gig_id" binding:"required"`
	SeekerID string   `json:"seeker_id" binding:"required"`
	Terms    string   `json:"terms" binding:"required,max=10000"`
	Pay      *float64 `json:"pay" binding:"required,gte=0"`
	Hours    *int     `json:"hours" binding:"omitempty,gte=0"`
	Date     string   `json:"date" binding:"required,datetime=2006-01-02"`
}

type ContractCreatedResponse struct {
	Message    string `json:"message"`
	ContractID string `json:"contract_id"`
}

type ContractEnvelope struct {
	Contract *ContractResponse `json:"contract"`
}

type SignContractRequest struct {
	// base64 подписи с canvas или напечатанное имя
	Signature string `json:"signature" binding:"required"`
}

type SignContractResponse struct {
	Message string                `json:"message"`
	Status  models.ContractStatus `json:"status"`
}

type ContractResponse struct {
	ID             string                `json:"id"`
	GigID          string                `json:"gig_id"`
	GigTitle       string                `json:"title,omitempty"`
	ProviderID     string                `json:"provider_id"`
	ProviderName   string                `json:"provider_name,omitempty"`
	SeekerID       string                `json:"seeker_id"`
	SeekerName     string                `json:"seeker_name,omitempty"`
	Terms          string                `json:"terms"`
	Pay            float64               `json:"pay"`
	Hours          *int                  `json:"hours"`
	Date           string                `json:"date"`
	Status         models.ContractStatus `json:"status"`
	ProviderSigned bool                  `json:"provider_signed"`
	SeekerSigned   bool                  `json:"seeker_signed"`
	SignedAt       *time.Time            `json:"signed_at"`
	CreatedAt      time.Time             `json:"created_at"`
}

type ContractListResponse struct {
	Contracts []*ContractResponse `json:"contracts"`
}

func NewContractResponse(c *models.Contract) *ContractResponse {
	resp := &ContractResponse{
		ID:             c.ID,
		GigID:          c.GigID,
		ProviderID:     c.ProviderID,
		SeekerID:       c.SeekerID,
		Terms:          c.Terms,
		Pay:            c.Pay,
		Hours:          c.Hours,
		Date:           time.Time(c.Date).Format(ContractDateLayout),
		Status:         c.Status,
		ProviderSigned: c.ProviderSigned(),
		SeekerSigned:   c.SeekerSigned(),
		SignedAt:       c.SignedAt,
		CreatedAt:      c.CreatedAt,
	}
	if c.Gig != nil {
		resp.GigTitle = c.Gig.Title
	}
	if c.Provider != nil {
		resp.ProviderName = c.Provider.Name
	}
	if c.Seeker != nil {
		resp.SeekerName = c.Seeker.Name
	}
	return resp
}
