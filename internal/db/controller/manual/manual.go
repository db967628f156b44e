// Package manual stores manual transactions and the payments they contribute to the summary.
package manual

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/finance"
	"github.com/AgencyAdmin/AgencyAdmin/internal/pagination"
)

var (
	// ErrTransactionNotFound is returned when a manual transaction is not found.
	ErrTransactionNotFound = errors.New("manual transaction not found")
	// ErrNegativeAmount is returned when the total or payout amount is negative.
	ErrNegativeAmount = errors.New("amounts must not be negative")
)

const manualIDQuery = "manual_transaction_id = ?"

// Input is the body of a manual transaction upsert. A missing id creates a new transaction.
type Input struct {
	ID             *uint64         `json:"id"`
	BrandName      string          `json:"brandName" validate:"required,max=200"`
	InfluencerName string          `json:"influencerName" validate:"required,max=200"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PayoutAmount   decimal.Decimal `json:"payoutAmount"`
	Note           string          `json:"note" validate:"max=500"`
	Date           *time.Time      `json:"date"`
}

// Upsert creates or updates a manual transaction and its linked brand payment and influencer payout
// in one database transaction. Profit and margin are always recomputed.
func Upsert(db *gorm.DB, in Input) (*models.ManualTransaction, error) {
	if in.TotalAmount.IsNegative() || in.PayoutAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var out models.ManualTransaction

	err := db.Transaction(func(tx *gorm.DB) error {
		if in.ID != nil {
			if err := tx.First(&out, *in.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTransactionNotFound
				}

				return err
			}
		}

		out.BrandName = strings.TrimSpace(in.BrandName)
		out.InfluencerName = strings.TrimSpace(in.InfluencerName)
		out.TotalAmount = in.TotalAmount
		out.PayoutAmount = in.PayoutAmount
		out.Profit = finance.Profit(in.TotalAmount, in.PayoutAmount)
		out.Margin = finance.Margin(in.TotalAmount, in.PayoutAmount)
		out.Note = in.Note

		switch {
		case in.Date != nil:
			out.Date = *in.Date
		case out.Date.IsZero():
			out.Date = time.Now()
		}

		if err := tx.Save(&out).Error; err != nil {
			return err
		}

		brandID := lookupID(tx, &models.Brand{}, out.BrandName)
		if err := link(tx, &out, models.PaymentBrand, out.TotalAmount, func(p *models.Payment) {
			p.BrandID = brandID
		}); err != nil {
			return err
		}

		influencerID := lookupID(tx, &models.Influencer{}, out.InfluencerName)

		return link(tx, &out, models.PaymentInfluencer, out.PayoutAmount, func(p *models.Payment) {
			p.InfluencerID = influencerID
		})
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// lookupID returns the id of the brand or influencer with exactly this name, if any.
func lookupID(tx *gorm.DB, model any, name string) *uint64 {
	var ids []uint64
	if err := tx.Model(model).Where("LOWER(name) = ?", strings.ToLower(name)).Limit(1).Pluck("id", &ids).Error; err != nil || len(ids) == 0 {
		return nil
	}

	return &ids[0]
}

func link(tx *gorm.DB, mt *models.ManualTransaction, paymentType string, amount decimal.Decimal, set func(*models.Payment)) error {
	var p models.Payment

	err := tx.Where(manualIDQuery+" AND type = ?", mt.ID, paymentType).First(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	id := mt.ID
	p.ManualTransactionID = &id
	p.Type = paymentType
	p.Amount = amount
	p.Advance = amount
	p.Balance = decimal.Zero
	p.Status = models.StatusPaid
	p.Note = "manual transaction"
	p.CreatedAt = mt.Date
	set(&p)

	return tx.Save(&p).Error
}

// List returns one page of manual transactions, newest first, and the total count.
func List(db *gorm.DB, page, limit int) ([]models.ManualTransaction, int64, error) {
	page, limit = pagination.Normalize(page, limit)

	var count int64
	if err := db.Model(&models.ManualTransaction{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	rows := []models.ManualTransaction{}
	err := db.Order("date DESC, id DESC").
		Offset(pagination.Offset(page, limit)).
		Limit(limit).
		Find(&rows).Error

	return rows, count, err
}

// Get returns a manual transaction by id.
func Get(db *gorm.DB, id uint64) (*models.ManualTransaction, error) {
	var mt models.ManualTransaction
	if err := db.First(&mt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}

		return nil, err
	}

	return &mt, nil
}

// Delete removes a manual transaction and its linked payments.
func Delete(db *gorm.DB, id uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(manualIDQuery, id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ManualTransaction{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}

		return nil
	})
}
