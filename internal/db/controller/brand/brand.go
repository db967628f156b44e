// Package brand guards brand deletion.
package brand

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/crud"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

// ErrBrandInUse is returned when deleting a brand that still has campaigns.
var ErrBrandInUse = errors.New("brand has campaigns")

// Delete removes a brand without campaigns.
func Delete(db *gorm.DB, id uint64) error {
	var campaigns int64
	if err := db.Model(&models.Campaign{}).Where("brand_id = ?", id).Count(&campaigns).Error; err != nil {
		return err
	}

	if campaigns > 0 {
		return ErrBrandInUse
	}

	return crud.Delete[models.Brand](db, id)
}
