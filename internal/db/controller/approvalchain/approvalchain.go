// Package approvalchain looks up the approval chain that applies to an amount.
package approvalchain

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

// ErrNoChain is returned when no active chain covers the amount.
var ErrNoChain = errors.New("no approval chain applies")

// Match returns the active chain for entity with the highest threshold not above amount.
func Match(db *gorm.DB, entity string, amount decimal.Decimal) (*models.ApprovalChain, error) {
	var chains []models.ApprovalChain
	if err := db.Where("entity = ? AND active = ?", entity, true).Find(&chains).Error; err != nil {
		return nil, err
	}

	var best *models.ApprovalChain

	for i := range chains {
		c := &chains[i]
		if c.Threshold.GreaterThan(amount) {
			continue
		}

		if best == nil || c.Threshold.GreaterThan(best.Threshold) {
			best = c
		}
	}

	if best == nil {
		return nil, ErrNoChain
	}

	return best, nil
}
