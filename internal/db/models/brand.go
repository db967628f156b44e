package models

import "time"

// Brand is a client company that pays for campaigns.
type Brand struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;uniqueIndex;not null" json:"name" validate:"required,max=200"`
	Website      string    `gorm:"size:255" json:"website" validate:"omitempty,url,max=255"`
	ContactName  string    `gorm:"size:200" json:"contactName" validate:"max=200"`
	ContactEmail string    `gorm:"size:255" json:"contactEmail" validate:"omitempty,email,max=255"`
	Phone        string    `gorm:"size:50" json:"phone" validate:"max=50"`
	Industry     string    `gorm:"size:100" json:"industry" validate:"max=100"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
