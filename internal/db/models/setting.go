// Package models contains database model definitions.
package models

import "time"

// Setting represents a configuration blob stored in the database under a unique name.
// Version is incremented on every write and backs optimistic concurrency checks.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"unique;size:100;not null"`
	Value     []byte
	Version   int64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
