package payment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/platform"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/dbtest"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

func seedPayments(t *testing.T, db *gorm.DB, paymentType string, n int, amount int64, at time.Time) {
	t.Helper()

	for range n {
		require.NoError(t, db.Create(&models.Payment{
			Type:      paymentType,
			Amount:    decimal.NewFromInt(amount),
			Status:    models.StatusPaid,
			CreatedAt: at,
		}).Error)
	}
}

func TestSummarize(t *testing.T) {
	db := dbtest.Open(t)
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	old := time.Date(2022, time.January, 5, 0, 0, 0, 0, time.UTC)

	seedPayments(t, db, models.PaymentBrand, 24, 100, old)
	seedPayments(t, db, models.PaymentBrand, 1, 500, time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC))
	seedPayments(t, db, models.PaymentInfluencer, 3, 60, time.Date(2024, time.April, 2, 10, 0, 0, 0, time.UTC))

	commission := 15.0
	_, err := platform.Apply(db, platform.Patch{Commission: &commission})
	require.NoError(t, err)

	s, err := Summarize(db, 1, 10, now)
	require.NoError(t, err)

	assert.Len(t, s.BrandPayments, 10)
	assert.Len(t, s.InfluencerPayouts, 3)
	assert.Equal(t, int64(25), s.BrandPaymentsCount)
	assert.Equal(t, int64(3), s.InfluencerPayoutsCount)
	assert.Equal(t, 3, s.BrandPaymentsPages)
	assert.Equal(t, 1, s.InfluencerPayoutsPages)

	assert.Equal(t, "2900", s.TotalRevenue.String())
	assert.Equal(t, "180", s.TotalPayouts.String())
	assert.Equal(t, "2720", s.Profit.String())
	assert.InDelta(t, 15.0, s.Commission, 0)

	// newest first
	assert.Equal(t, "500", s.BrandPayments[0].Amount.String())

	require.Len(t, s.Monthly, 6)

	for _, b := range s.Monthly {
		switch b.Month {
		case "Mar":
			assert.Equal(t, "500", b.Revenue.String())
		case "Apr":
			assert.Equal(t, "180", b.Payouts.String())
			assert.Equal(t, "-180", b.Profit.String())
		default:
			assert.True(t, b.Revenue.IsZero(), b.Month)
			assert.True(t, b.Payouts.IsZero(), b.Month)
		}
	}

	last, err := Summarize(db, 3, 10, now)
	require.NoError(t, err)
	assert.Len(t, last.BrandPayments, 5)
	assert.Empty(t, last.InfluencerPayouts)
	assert.NotNil(t, last.InfluencerPayouts)
}

func TestSummarizeEmpty(t *testing.T) {
	db := dbtest.Open(t)

	s, err := Summarize(db, 0, 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 10, s.Limit)
	assert.Equal(t, 1, s.BrandPaymentsPages)
	assert.True(t, s.TotalRevenue.IsZero())
	assert.InDelta(t, platform.DefaultCommission, s.Commission, 0)

	_, err = Summarize(nil, 1, 10, time.Now())
	require.ErrorIs(t, err, ErrDBNil)
}

func TestCreateAndUpdateStatus(t *testing.T) {
	db := dbtest.Open(t)

	require.ErrorIs(t, Create(db, &models.Payment{Type: "REFUND"}), ErrInvalidType)
	require.ErrorIs(t, Create(db, &models.Payment{Type: models.PaymentBrand, Status: "LOST"}), ErrInvalidStatus)

	p := &models.Payment{Type: models.PaymentBrand, Amount: decimal.NewFromInt(1000), Advance: decimal.NewFromInt(400), Balance: decimal.NewFromInt(600)}
	require.NoError(t, Create(db, p))
	assert.Equal(t, models.StatusPending, p.Status)

	updated, err := UpdateStatus(db, p.ID, models.StatusOverdue)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOverdue, updated.Status)

	var stored models.Payment
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, models.StatusOverdue, stored.Status)

	_, err = UpdateStatus(db, 999, models.StatusPaid)
	require.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = UpdateStatus(db, p.ID, "DONE")
	require.ErrorIs(t, err, ErrInvalidStatus)
}
