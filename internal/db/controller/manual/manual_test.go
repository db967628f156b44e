package manual

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/dbtest"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

func TestUpsertCreatesLinkedPayments(t *testing.T) {
	db := dbtest.Open(t)

	brand := models.Brand{Name: "Acme"}
	require.NoError(t, db.Create(&brand).Error)

	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	mt, err := Upsert(db, Input{
		BrandName:      " acme ",
		InfluencerName: "Riya",
		TotalAmount:    decimal.NewFromInt(10000),
		PayoutAmount:   decimal.NewFromInt(6000),
		Date:           &date,
	})
	require.NoError(t, err)
	assert.NotZero(t, mt.ID)
	assert.Equal(t, "acme", mt.BrandName)
	assert.Equal(t, "4000", mt.Profit.String())
	assert.Equal(t, "40.00", mt.Margin.StringFixed(2))

	var payments []models.Payment
	require.NoError(t, db.Where("manual_transaction_id = ?", mt.ID).Order("type").Find(&payments).Error)
	require.Len(t, payments, 2)

	assert.Equal(t, models.PaymentBrand, payments[0].Type)
	assert.Equal(t, "10000", payments[0].Amount.String())
	require.NotNil(t, payments[0].BrandID)
	assert.Equal(t, brand.ID, *payments[0].BrandID)
	assert.Equal(t, 2024, payments[0].CreatedAt.Year())

	assert.Equal(t, models.PaymentInfluencer, payments[1].Type)
	assert.Equal(t, "6000", payments[1].Amount.String())
	assert.Nil(t, payments[1].InfluencerID)
}

func TestUpsertExtremeMargin(t *testing.T) {
	db := dbtest.Open(t)

	mt, err := Upsert(db, Input{
		BrandName: "Acme", InfluencerName: "Riya",
		TotalAmount:  decimal.RequireFromString("0.01"),
		PayoutAmount: decimal.RequireFromString("999999999999.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "-9999999999999800.00", mt.Margin.StringFixed(2))

	stored, err := Get(db, mt.ID)
	require.NoError(t, err)
	assert.True(t, mt.Margin.Equal(stored.Margin))

	// the widest margin needs 16 integer digits
	s, err := schema.Parse(&models.ManualTransaction{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	assert.Equal(t, "decimal(20,2)", s.LookUpField("Margin").TagSettings["TYPE"])
}

func TestUpsertUpdates(t *testing.T) {
	db := dbtest.Open(t)

	mt, err := Upsert(db, Input{
		BrandName: "Acme", InfluencerName: "Riya",
		TotalAmount: decimal.NewFromInt(1000), PayoutAmount: decimal.NewFromInt(800),
	})
	require.NoError(t, err)

	id := mt.ID
	updated, err := Upsert(db, Input{
		ID: &id, BrandName: "Acme", InfluencerName: "Riya",
		TotalAmount: decimal.NewFromInt(1000), PayoutAmount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "-200", updated.Profit.String())
	assert.Equal(t, "-20", updated.Margin.String())

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("manual_transaction_id = ?", id).Count(&count).Error)
	assert.Equal(t, int64(2), count, "linked payments are updated, not duplicated")

	var payout models.Payment
	require.NoError(t, db.Where("manual_transaction_id = ? AND type = ?", id, models.PaymentInfluencer).First(&payout).Error)
	assert.Equal(t, "1200", payout.Amount.String())

	missing := uint64(999)
	_, err = Upsert(db, Input{ID: &missing, BrandName: "x", InfluencerName: "y"})
	require.ErrorIs(t, err, ErrTransactionNotFound)

	_, err = Upsert(db, Input{BrandName: "x", InfluencerName: "y", TotalAmount: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, ErrNegativeAmount)
}

func TestListGetDelete(t *testing.T) {
	db := dbtest.Open(t)

	for i := range 3 {
		d := time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		_, err := Upsert(db, Input{
			BrandName: "B", InfluencerName: "I", Date: &d,
			TotalAmount: decimal.NewFromInt(100), PayoutAmount: decimal.NewFromInt(50),
		})
		require.NoError(t, err)
	}

	rows, count, err := List(db, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.Len(t, rows, 2)
	assert.Equal(t, time.March, rows[0].Date.Month())

	got, err := Get(db, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, rows[0].ID, got.ID)

	require.NoError(t, Delete(db, rows[0].ID))

	var linked int64
	require.NoError(t, db.Model(&models.Payment{}).Where("manual_transaction_id = ?", rows[0].ID).Count(&linked).Error)
	assert.Zero(t, linked)

	_, err = Get(db, rows[0].ID)
	require.ErrorIs(t, err, ErrTransactionNotFound)
	require.ErrorIs(t, Delete(db, rows[0].ID), ErrTransactionNotFound)
}
