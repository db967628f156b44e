// Package influencer lists influencers and guards their approval and deletion.
package influencer

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/crud"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

// ErrInfluencerAssigned is returned when deleting an influencer still assigned to a campaign.
var ErrInfluencerAssigned = errors.New("influencer is assigned to a campaign")

// Order is the list order of influencers.
const Order = "name, id"

// Approved returns the scopes filtering by approval, none when approved is nil.
func Approved(approved *bool) []crud.Scope {
	if approved == nil {
		return nil
	}

	return []crud.Scope{func(q *gorm.DB) *gorm.DB {
		return q.Where("approved = ?", *approved)
	}}
}

// List returns one page of influencers ordered by name, optionally filtered by approval.
func List(db *gorm.DB, approved *bool, page, limit int) ([]models.Influencer, int64, error) {
	return crud.List[models.Influencer](db, page, limit, Order, Approved(approved)...)
}

// SetApproval sets the approval flag, or flips it when approved is nil.
func SetApproval(db *gorm.DB, id uint64, approved *bool) (*models.Influencer, error) {
	inf, err := crud.Get[models.Influencer](db, id)
	if err != nil {
		return nil, err
	}

	next := !inf.Approved
	if approved != nil {
		next = *approved
	}

	if err := db.Model(inf).Update("approved", next).Error; err != nil {
		return nil, err
	}
	inf.Approved = next

	return inf, nil
}

// Delete removes an influencer that no campaign references.
func Delete(db *gorm.DB, id uint64) error {
	var assigned int64
	if err := db.Model(&models.CampaignInfluencer{}).Where("influencer_id = ?", id).Count(&assigned).Error; err != nil {
		return err
	}

	if assigned > 0 {
		return ErrInfluencerAssigned
	}

	return crud.Delete[models.Influencer](db, id)
}
