package campaign

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/dbtest"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

type fixture struct {
	brand      models.Brand
	approved   models.Influencer
	unapproved models.Influencer
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{
		brand:      models.Brand{Name: "Acme"},
		approved:   models.Influencer{Name: "Riya", Approved: true},
		unapproved: models.Influencer{Name: "Kabir"},
	}
	require.NoError(t, db.Create(&f.brand).Error)
	require.NoError(t, db.Create(&f.approved).Error)
	require.NoError(t, db.Create(&f.unapproved).Error)

	return f
}

func input(f fixture, assignments ...Assignment) Input {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	return Input{
		Name:        "Summer launch",
		BrandID:     f.brand.ID,
		Platform:    "instagram",
		ContentType: "reel",
		StartDate:   start,
		EndDate:     start.AddDate(0, 1, 0),
		Budget:      decimal.NewFromInt(50000),
		Assignments: assignments,
	}
}

func TestCreate(t *testing.T) {
	db := dbtest.Open(t)
	f := seed(t, db)

	c, err := Create(db, input(f, Assignment{InfluencerID: f.approved.ID, AgreedPrice: decimal.NewFromInt(12000)}))
	require.NoError(t, err)
	assert.Equal(t, models.CampaignDraft, c.Status)
	require.NotNil(t, c.Brand)
	assert.Equal(t, "Acme", c.Brand.Name)
	require.Len(t, c.Assignments, 1)
	require.NotNil(t, c.Assignments[0].Influencer)
	assert.Equal(t, "Riya", c.Assignments[0].Influencer.Name)
	assert.Equal(t, "12000", c.Assignments[0].AgreedPrice.String())
}

func TestCreateValidation(t *testing.T) {
	db := dbtest.Open(t)
	f := seed(t, db)

	badDates := input(f)
	badDates.EndDate = badDates.StartDate.AddDate(0, 0, -1)

	unknownBrand := input(f)
	unknownBrand.BrandID = 999

	negative := input(f)
	negative.Budget = decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{name: "end before start", in: badDates, wantErr: ErrInvalidDates},
		{name: "unknown brand", in: unknownBrand, wantErr: ErrBrandNotFound},
		{name: "negative budget", in: negative, wantErr: ErrNegativeAmount},
		{name: "unapproved influencer", in: input(f, Assignment{InfluencerID: f.unapproved.ID}), wantErr: ErrInfluencerNotApproved},
		{name: "unknown influencer", in: input(f, Assignment{InfluencerID: 999}), wantErr: ErrInfluencerNotFound},
		{
			name:    "duplicate influencer",
			in:      input(f, Assignment{InfluencerID: f.approved.ID}, Assignment{InfluencerID: f.approved.ID}),
			wantErr: ErrDuplicateInfluencer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(db, tt.in)
			require.ErrorIs(t, err, tt.wantErr)

			var count int64
			require.NoError(t, db.Model(&models.Campaign{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestListGetDelete(t *testing.T) {
	db := dbtest.Open(t)
	f := seed(t, db)

	c, err := Create(db, input(f, Assignment{InfluencerID: f.approved.ID}))
	require.NoError(t, err)

	rows, count, err := List(db, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Assignments, 1)

	require.NoError(t, Delete(db, c.ID))

	var assignments int64
	require.NoError(t, db.Model(&models.CampaignInfluencer{}).Count(&assignments).Error)
	assert.Zero(t, assignments)

	_, err = Get(db, c.ID)
	require.ErrorIs(t, err, ErrCampaignNotFound)
	require.ErrorIs(t, Delete(db, c.ID), ErrCampaignNotFound)
}
