package daemon

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

// defaultGrants are the RBAC rows created on an empty permissions table.
// The admin role needs none.
var defaultGrants = map[string]map[string][]string{ //nolint:gochecknoglobals
	"editor": {
		auth.ResourceCMS:           {auth.ActionRead, auth.ActionWrite},
		auth.ResourceAnnouncements: {auth.ActionRead, auth.ActionWrite},
		auth.ResourceSettings:      {auth.ActionRead},
		auth.ResourceProfile:       {auth.ActionRead, auth.ActionWrite},
	},
	"finance": {
		auth.ResourcePayments:    {auth.ActionRead, auth.ActionWrite},
		auth.ResourceCampaigns:   {auth.ActionRead},
		auth.ResourceBrands:      {auth.ActionRead},
		auth.ResourceInfluencers: {auth.ActionRead},
		auth.ResourceProfile:     {auth.ActionRead, auth.ActionWrite},
	},
	"manager": {
		auth.ResourceCampaigns:   {auth.ActionRead, auth.ActionWrite},
		auth.ResourceBrands:      {auth.ActionRead, auth.ActionWrite},
		auth.ResourceInfluencers: {auth.ActionRead, auth.ActionWrite},
		auth.ResourcePayments:    {auth.ActionRead},
		auth.ResourceContact:     {auth.ActionRead, auth.ActionWrite},
		auth.ResourceProfile:     {auth.ActionRead, auth.ActionWrite},
	},
}

func seed(db *gorm.DB) error {
	// Seed initial data if the permissions table is empty
	var count int64
	if err := db.Model(&models.Permission{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	var rows []models.Permission

	for role, resources := range defaultGrants {
		for resource, actions := range resources {
			for _, action := range actions {
				rows = append(rows, models.Permission{Role: role, Resource: resource, Action: action, Allowed: true})
			}
		}
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
