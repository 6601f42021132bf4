package models

import (
	"time"

	"gorm.io/datatypes"
)

type Contract struct {
	BaseModel
	GigID             string         `gorm:"type:uuid;not null;index" json:"gig_id"`
	ProviderID        string         `gorm:"type:uuid;not null;index" json:"provider_id"`
	SeekerID          string         `gorm:"type:uuid;not null;index" json:"seeker_id"`
	Terms             string         `gorm:"not null" json:"terms"`
	Pay               float64        `gorm:"not null" json:"pay"`
	Hours             *int           `json:"hours"`
	Date              datatypes.Date `gorm:"not null" json:"date"`
	ProviderSignature *string        `json:"-"`
	SeekerSignature   *string        `json:"-"`
	Status            ContractStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SignedAt          *time.Time     `json:"signed_at"`

	// Relations
	Gig      *Gig  `gorm:"foreignKey:GigID" json:"-"`
	Provider *User `gorm:"foreignKey:ProviderID" json:"-"`
	Seeker   *User `gorm:"foreignKey:SeekerID" json:"-"`
}

func (c *Contract) ProviderSigned() bool {
	return c.ProviderSignature != nil && *c.ProviderSignature != ""
}

func (c *Contract) SeekerSigned() bool {
	return c.SeekerSignature != nil && *c.SeekerSignature != ""
}

func (c *Contract) IsParty(userID string) bool {
	return c.ProviderID == userID || c.SeekerID == userID
}
