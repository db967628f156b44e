// Package finance holds the profit, margin and monthly aggregation arithmetic.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

// SeriesMonths is the number of monthly buckets in a series.
const SeriesMonths = 6

var hundred = decimal.NewFromInt(100)

// Profit returns total minus payout.
func Profit(total, payout decimal.Decimal) decimal.Decimal {
	return total.Sub(payout)
}

// Margin returns profit as a percentage of total rounded to two decimals, zero when total is zero.
func Margin(total, payout decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return Profit(total, payout).Div(total).Mul(hundred).Round(2)
}

// Row is the projection of a payment needed for bucketing.
type Row struct {
	Type      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Bucket is one month of the revenue series.
type Bucket struct {
	Month   string          `json:"month"`
	Year    int             `json:"year"`
	Revenue decimal.Decimal `json:"revenue"`
	Payouts decimal.Decimal `json:"payouts"`
	Profit  decimal.Decimal `json:"profit"`
}

// WindowStart returns the first instant of the oldest month in the series ending at now.
func WindowStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()-(SeriesMonths-1), 1, 0, 0, 0, 0, now.Location())
}

// MonthlySeries buckets rows into the SeriesMonths calendar months ending with the month of now,
// oldest first. A row counts in the bucket whose month and year equal its creation time in the
// location of now, rows outside the window are ignored.
func MonthlySeries(now time.Time, rows []Row) []Bucket {
	start := WindowStart(now)

	buckets := make([]Bucket, SeriesMonths)
	for i := range buckets {
		m := start.AddDate(0, i, 0)
		buckets[i] = Bucket{
			Month:   m.Month().String()[:3],
			Year:    m.Year(),
			Revenue: decimal.Zero,
			Payouts: decimal.Zero,
			Profit:  decimal.Zero,
		}
	}

	for _, r := range rows {
		at := r.CreatedAt.In(now.Location())
		idx := (at.Year()-start.Year())*12 + int(at.Month()) - int(start.Month())
		if idx < 0 || idx >= SeriesMonths {
			continue
		}

		switch r.Type {
		case models.PaymentBrand:
			buckets[idx].Revenue = buckets[idx].Revenue.Add(r.Amount)
		case models.PaymentInfluencer:
			buckets[idx].Payouts = buckets[idx].Payouts.Add(r.Amount)
		}
	}

	for i := range buckets {
		buckets[i].Profit = buckets[i].Revenue.Sub(buckets[i].Payouts)
	}

	return buckets
}
