package approvalchain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/dbtest"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

func TestMatch(t *testing.T) {
	db := dbtest.Open(t)

	chains := []models.ApprovalChain{
		{Name: "small", Entity: "payment", Threshold: decimal.NewFromInt(1000), Roles: models.StringList{"finance"}, Active: true},
		{Name: "large", Entity: "payment", Threshold: decimal.NewFromInt(50000), Roles: models.StringList{"finance", "admin"}, Active: true},
		{Name: "huge inactive", Entity: "payment", Threshold: decimal.NewFromInt(10000), Roles: models.StringList{"ceo"}, Active: false},
		{Name: "campaign", Entity: "campaign", Threshold: decimal.NewFromInt(0), Roles: models.StringList{"manager"}, Active: true},
	}
	for i := range chains {
		require.NoError(t, db.Create(&chains[i]).Error)
	}

	tests := []struct {
		name    string
		entity  string
		amount  int64
		want    string
		wantErr error
	}{
		{name: "below every threshold", entity: "payment", amount: 999, wantErr: ErrNoChain},
		{name: "exact threshold", entity: "payment", amount: 1000, want: "small"},
		{name: "inactive skipped", entity: "payment", amount: 20000, want: "small"},
		{name: "highest applicable", entity: "payment", amount: 75000, want: "large"},
		{name: "other entity", entity: "campaign", amount: 5, want: "campaign"},
		{name: "unknown entity", entity: "brand", amount: 5, wantErr: ErrNoChain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Match(db, tt.entity, decimal.NewFromInt(tt.amount))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name)
		})
	}

	c, err := Match(db, "payment", decimal.NewFromInt(60000))
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"finance", "admin"}, c.Roles)
}
