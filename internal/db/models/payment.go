package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment types.
const (
	PaymentBrand      = "BRAND_PAYMENT"
	PaymentInfluencer = "INFLUENCER_PAYOUT"
)

// Payment statuses.
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusOverdue = "OVERDUE"
)

// Payment is money received from a brand or paid out to an influencer.
type Payment struct {
	ID                  uint64          `gorm:"primaryKey" json:"id"`
	Type                string          `gorm:"size:30;not null;index" json:"type"`
	Amount              decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
	Advance             decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"advance"`
	Balance             decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	Status              string          `gorm:"size:20;not null;default:PENDING" json:"status"`
	CampaignID          *uint64         `gorm:"index" json:"campaignId,omitempty"`
	BrandID             *uint64         `gorm:"index" json:"brandId,omitempty"`
	InfluencerID        *uint64         `gorm:"index" json:"influencerId,omitempty"`
	ManualTransactionID *uint64         `gorm:"index" json:"manualTransactionId,omitempty"`
	Note                string          `gorm:"size:500" json:"note"`
	CreatedAt           time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// ManualTransaction is an off-platform deal entered by hand, with its derived profit and margin.
type ManualTransaction struct {
	ID             uint64          `gorm:"primaryKey" json:"id"`
	BrandName      string          `gorm:"size:200;not null;index" json:"brandName"`
	InfluencerName string          `gorm:"size:200;not null;index" json:"influencerName"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"totalAmount"`
	PayoutAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"payoutAmount"`
	Profit         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"profit"`
	Margin         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"margin"`
	Note           string          `gorm:"size:500" json:"note"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
