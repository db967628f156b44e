// Package payment lists payments and computes the revenue summary.
package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/platform"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/finance"
	"github.com/AgencyAdmin/AgencyAdmin/internal/pagination"
)

var (
	// ErrPaymentNotFound is returned when a payment is not found.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrInvalidStatus is returned for a status outside PENDING, PAID and OVERDUE.
	ErrInvalidStatus = errors.New("invalid payment status")
	// ErrInvalidType is returned for a type outside BRAND_PAYMENT and INFLUENCER_PAYOUT.
	ErrInvalidType = errors.New("invalid payment type")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Summary is the payments page: both lists paginated separately plus the aggregates.
type Summary struct {
	BrandPayments          []models.Payment `json:"brandPayments"`
	InfluencerPayouts      []models.Payment `json:"influencerPayouts"`
	BrandPaymentsCount     int64            `json:"brandPaymentsCount"`
	InfluencerPayoutsCount int64            `json:"influencerPayoutsCount"`
	BrandPaymentsPages     int              `json:"brandPaymentsPages"`
	InfluencerPayoutsPages int              `json:"influencerPayoutsPages"`
	Page                   int              `json:"page"`
	Limit                  int              `json:"limit"`
	TotalRevenue           decimal.Decimal  `json:"totalRevenue"`
	TotalPayouts           decimal.Decimal  `json:"totalPayouts"`
	Profit                 decimal.Decimal  `json:"profit"`
	Commission             float64          `json:"commission"`
	Monthly                []finance.Bucket `json:"monthly"`
}

// ValidStatus reports whether status is a known payment status.
func ValidStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusPaid, models.StatusOverdue:
		return true
	}

	return false
}

// ValidType reports whether t is a known payment type.
func ValidType(t string) bool {
	return t == models.PaymentBrand || t == models.PaymentInfluencer
}

// Page returns one page of payments of the given type, newest first, and the total count.
func Page(db *gorm.DB, paymentType string, page, limit int) ([]models.Payment, int64, error) {
	var count int64
	if err := db.Model(&models.Payment{}).Where("type = ?", paymentType).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	rows := []models.Payment{}
	err := db.Where("type = ?", paymentType).
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset(page, limit)).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, count, nil
}

// Total sums the amount of all payments of the given type.
func Total(db *gorm.DB, paymentType string) (decimal.Decimal, error) {
	var total decimal.Decimal

	err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", paymentType).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// Summarize builds the payments summary for the page. now decides the monthly window.
func Summarize(db *gorm.DB, page, limit int, now time.Time) (*Summary, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	page, limit = pagination.Normalize(page, limit)

	out := &Summary{Page: page, Limit: limit}

	var err error
	if out.BrandPayments, out.BrandPaymentsCount, err = Page(db, models.PaymentBrand, page, limit); err != nil {
		return nil, err
	}
	if out.InfluencerPayouts, out.InfluencerPayoutsCount, err = Page(db, models.PaymentInfluencer, page, limit); err != nil {
		return nil, err
	}

	out.BrandPaymentsPages = pagination.TotalPages(out.BrandPaymentsCount, limit)
	out.InfluencerPayoutsPages = pagination.TotalPages(out.InfluencerPayoutsCount, limit)

	if out.TotalRevenue, err = Total(db, models.PaymentBrand); err != nil {
		return nil, err
	}
	if out.TotalPayouts, err = Total(db, models.PaymentInfluencer); err != nil {
		return nil, err
	}
	out.Profit = out.TotalRevenue.Sub(out.TotalPayouts)

	settings, err := platform.Load(db)
	if err != nil {
		return nil, err
	}
	out.Commission = settings.Commission

	// a day of slack keeps rows stored in another offset, MonthlySeries applies the exact window
	var recent []models.Payment
	err = db.Select("type", "amount", "created_at").
		Where("created_at >= ?", finance.WindowStart(now).AddDate(0, 0, -1)).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	rows := make([]finance.Row, len(recent))
	for i, p := range recent {
		rows[i] = finance.Row{Type: p.Type, Amount: p.Amount, CreatedAt: p.CreatedAt}
	}

	out.Monthly = finance.MonthlySeries(now, rows)

	return out, nil
}

// Create stores a new payment.
func Create(db *gorm.DB, p *models.Payment) error {
	if db == nil {
		return ErrDBNil
	}
	if !ValidType(p.Type) {
		return ErrInvalidType
	}
	if p.Status == "" {
		p.Status = models.StatusPending
	}
	if !ValidStatus(p.Status) {
		return ErrInvalidStatus
	}

	return db.Create(p).Error
}

// UpdateStatus changes the status of a payment.
func UpdateStatus(db *gorm.DB, id uint64, status string) (*models.Payment, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var p models.Payment
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}

		return nil, err
	}

	if err := db.Model(&p).Update("status", status).Error; err != nil {
		return nil, err
	}
	p.Status = status

	return &p, nil
}
