// Package campaign validates and stores campaigns with their influencer assignments.
package campaign

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/pagination"
)

var (
	// ErrCampaignNotFound is returned when a campaign is not found.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrBrandNotFound is returned when the campaign brand does not exist.
	ErrBrandNotFound = errors.New("brand not found")
	// ErrInvalidDates is returned when the campaign ends before it starts.
	ErrInvalidDates = errors.New("end date must not be before start date")
	// ErrInfluencerNotFound is returned when an assigned influencer does not exist.
	ErrInfluencerNotFound = errors.New("influencer not found")
	// ErrInfluencerNotApproved is returned when an assigned influencer is not approved.
	ErrInfluencerNotApproved = errors.New("influencer is not approved")
	// ErrDuplicateInfluencer is returned when an influencer is assigned twice.
	ErrDuplicateInfluencer = errors.New("influencer assigned more than once")
	// ErrNegativeAmount is returned for a negative budget or agreed price.
	ErrNegativeAmount = errors.New("amounts must not be negative")
)

// Assignment is an influencer to attach to a new campaign.
type Assignment struct {
	InfluencerID uint64          `json:"influencerId" validate:"required"`
	AgreedPrice  decimal.Decimal `json:"agreedPrice"`
}

// Input is the body of a campaign creation.
type Input struct {
	Name        string          `json:"name" validate:"required,max=200"`
	BrandID     uint64          `json:"brandId" validate:"required"`
	Platform    string          `json:"platform" validate:"required,oneof=instagram youtube tiktok facebook twitter linkedin"`
	ContentType string          `json:"contentType" validate:"required,oneof=reel story post video blog"`
	StartDate   time.Time       `json:"startDate" validate:"required"`
	EndDate     time.Time       `json:"endDate" validate:"required"`
	Budget      decimal.Decimal `json:"budget"`
	Status      string          `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE COMPLETED CANCELLED"`
	Assignments []Assignment    `json:"assignments" validate:"dive"`
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Brand").Preload("Assignments.Influencer")
}

// Create checks the references of in and stores the campaign and its assignments.
func Create(db *gorm.DB, in Input) (*models.Campaign, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, ErrInvalidDates
	}
	if in.Budget.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var id uint64

	err := db.Transaction(func(tx *gorm.DB) error {
		var brands int64
		if err := tx.Model(&models.Brand{}).Where("id = ?", in.BrandID).Count(&brands).Error; err != nil {
			return err
		}
		if brands == 0 {
			return pkgerrors.Wrapf(ErrBrandNotFound, "brand %d", in.BrandID)
		}

		c := models.Campaign{
			Name:        in.Name,
			BrandID:     in.BrandID,
			Platform:    in.Platform,
			ContentType: in.ContentType,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Budget:      in.Budget,
			Status:      in.Status,
		}
		if c.Status == "" {
			c.Status = models.CampaignDraft
		}

		seen := make(map[uint64]struct{}, len(in.Assignments))

		for _, a := range in.Assignments {
			if _, dup := seen[a.InfluencerID]; dup {
				return pkgerrors.Wrapf(ErrDuplicateInfluencer, "influencer %d", a.InfluencerID)
			}
			seen[a.InfluencerID] = struct{}{}

			if a.AgreedPrice.IsNegative() {
				return ErrNegativeAmount
			}

			var inf models.Influencer
			if err := tx.First(&inf, a.InfluencerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrapf(ErrInfluencerNotFound, "influencer %d", a.InfluencerID)
				}

				return err
			}

			if !inf.Approved {
				return pkgerrors.Wrapf(ErrInfluencerNotApproved, "influencer %d", a.InfluencerID)
			}

			c.Assignments = append(c.Assignments, models.CampaignInfluencer{
				InfluencerID: a.InfluencerID,
				AgreedPrice:  a.AgreedPrice,
			})
		}

		if err := tx.Create(&c).Error; err != nil {
			return err
		}

		id = c.ID

		return nil
	})
	if err != nil {
		return nil, err
	}

	return Get(db, id)
}

// Get returns a campaign with its brand and assignments.
func Get(db *gorm.DB, id uint64) (*models.Campaign, error) {
	var c models.Campaign
	if err := withRelations(db).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}

		return nil, err
	}

	return &c, nil
}

// List returns one page of campaigns, newest first, with brands and assignments.
func List(db *gorm.DB, page, limit int) ([]models.Campaign, int64, error) {
	page, limit = pagination.Normalize(page, limit)

	var count int64
	if err := db.Model(&models.Campaign{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	rows := []models.Campaign{}
	err := withRelations(db).
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset(page, limit)).
		Limit(limit).
		Find(&rows).Error

	return rows, count, err
}

// Delete removes a campaign and its assignments.
func Delete(db *gorm.DB, id uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.CampaignInfluencer{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Campaign{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCampaignNotFound
		}

		return nil
	})
}
