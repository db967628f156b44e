package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Influencer is a content creator that can be assigned to campaigns once approved.
type Influencer struct {
	ID         uint64          `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:200;not null;index" json:"name" validate:"required,max=200"`
	Handle     string          `gorm:"size:100" json:"handle" validate:"max=100"`
	Email      string          `gorm:"size:255" json:"email" validate:"omitempty,email,max=255"`
	Phone      string          `gorm:"size:50" json:"phone" validate:"max=50"`
	Platform   string          `gorm:"size:50" json:"platform" validate:"omitempty,oneof=instagram youtube tiktok facebook twitter linkedin"`
	Followers  int64           `json:"followers" validate:"gte=0"`
	Niche      string          `gorm:"size:100" json:"niche" validate:"max=100"`
	ReelPrice  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"reelPrice"`
	StoryPrice decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"storyPrice"`
	PostPrice  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"postPrice"`
	Approved   bool            `gorm:"not null;default:false;index" json:"approved"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
