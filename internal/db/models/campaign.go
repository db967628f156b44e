package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign statuses.
const (
	CampaignDraft     = "DRAFT"
	CampaignActive    = "ACTIVE"
	CampaignCompleted = "COMPLETED"
	CampaignCancelled = "CANCELLED"
)

// Campaign is a brand engagement delivered by one or more influencers.
type Campaign struct {
	ID          uint64               `gorm:"primaryKey" json:"id"`
	Name        string               `gorm:"size:200;not null" json:"name"`
	BrandID     uint64               `gorm:"not null;index" json:"brandId"`
	Brand       *Brand               `json:"brand,omitempty"`
	Platform    string               `gorm:"size:50;not null" json:"platform"`
	ContentType string               `gorm:"size:50;not null" json:"contentType"`
	StartDate   time.Time            `json:"startDate"`
	EndDate     time.Time            `json:"endDate"`
	Budget      decimal.Decimal      `gorm:"type:decimal(14,2);not null;default:0" json:"budget"`
	Status      string               `gorm:"size:20;not null;default:DRAFT" json:"status"`
	Assignments []CampaignInfluencer `gorm:"constraint:OnDelete:CASCADE" json:"assignments"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// CampaignInfluencer assigns an influencer to a campaign at an agreed price.
type CampaignInfluencer struct {
	ID           uint64          `gorm:"primaryKey" json:"id"`
	CampaignID   uint64          `gorm:"not null;uniqueIndex:idx_campaign_influencer" json:"campaignId"`
	InfluencerID uint64          `gorm:"not null;uniqueIndex:idx_campaign_influencer;index" json:"influencerId"`
	Influencer   *Influencer     `json:"influencer,omitempty"`
	AgreedPrice  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"agreedPrice"`
}
