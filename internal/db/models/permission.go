package models

import "time"

// Permission is one RBAC row: it allows or denies a role an action on a resource.
// Roles are plain names carried by the identity provider token, they are not stored.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Role is the role name the row applies to (e.g. "finance", "editor").
	Role string `gorm:"size:100;not null;uniqueIndex:idx_permission_rule" json:"role" validate:"required,max=100"`
	// Resource is the resource this permission applies to (e.g. "payments", "cms").
	Resource string `gorm:"size:100;not null;uniqueIndex:idx_permission_rule" json:"resource" validate:"required,max=100"`
	// Action is the action on the resource (read or write).
	Action string `gorm:"size:50;not null;uniqueIndex:idx_permission_rule" json:"action" validate:"required,oneof=read write"`
	// Allowed grants the action when true, a false row documents an explicit deny.
	Allowed bool `gorm:"not null;default:false" json:"allowed"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
