package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalChain lists the roles that must approve campaign or payment actions above a threshold.
type ApprovalChain struct {
	ID        uint64          `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	Entity    string          `gorm:"size:30;not null;index" json:"entity" validate:"required,oneof=campaign payment"`
	Threshold decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"threshold"`
	Roles     StringList      `gorm:"type:text" json:"roles" validate:"required,min=1,dive,required"`
	Active    bool            `gorm:"not null" json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Webhook receives signed event deliveries.
type Webhook struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"size:500;not null" json:"url" validate:"required,url,startswith=http"`
	Event     string    `gorm:"size:100;not null;index" json:"event" validate:"required,max=100"`
	Secret    string    `gorm:"size:128;not null" json:"secret" validate:"max=128"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IPWhitelist is an address or CIDR range allowed to reach the admin API.
type IPWhitelist struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	IP        string    `gorm:"size:64;not null;uniqueIndex" json:"ip" validate:"required,ip|cidr"`
	Label     string    `gorm:"size:200" json:"label" validate:"max=200"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the table name singular like the API path.
func (IPWhitelist) TableName() string {
	return "ip_whitelist"
}

// Announcement is a message shown to admins, brands or influencers for a time window.
type Announcement struct {
	ID        uint64     `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Body      string     `gorm:"type:text" json:"body"`
	Audience  string     `gorm:"size:30;not null;default:all" json:"audience" validate:"omitempty,oneof=all admins brands influencers"`
	Active    bool       `gorm:"not null" json:"active"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	EndsAt    *time.Time `json:"endsAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Contact submission statuses.
const (
	ContactNew      = "new"
	ContactRead     = "read"
	ContactArchived = "archived"
)

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	Email     string    `gorm:"size:255;not null" json:"email" validate:"required,email,max=255"`
	Phone     string    `gorm:"size:50" json:"phone" validate:"max=50"`
	Subject   string    `gorm:"size:200" json:"subject" validate:"max=200"`
	Message   string    `gorm:"type:text;not null" json:"message" validate:"required,max=5000"`
	Status    string    `gorm:"size:20;not null;default:new" json:"status" validate:"omitempty,oneof=new read archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewsletterSubscriber is an email address signed up for the newsletter.
type NewsletterSubscriber struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email" validate:"required,email,max=255"`
	Source    string    `gorm:"size:100" json:"source" validate:"max=100"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminProfile holds the editable profile of an authenticated admin, keyed by token subject.
type AdminProfile struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Subject   string    `gorm:"size:255;not null;uniqueIndex" json:"subject"`
	Name      string    `gorm:"size:200" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
