package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

func TestMigrateSeedsPermissionsOnce(t *testing.T) {
	cfg := &config.Config{DB: config.DB{GormEngine: config.EngineSQLite, Name: "file::memory:"}}

	db, err := Open(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, Migrate(db))

	var first int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&first).Error)
	assert.Positive(t, first)

	require.NoError(t, Migrate(db))

	var second int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&second).Error)
	assert.Equal(t, first, second)

	svc := auth.NewService(db, nil)

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{"finance", auth.ResourcePayments, auth.ActionWrite, true},
		{"finance", auth.ResourceCMS, auth.ActionWrite, false},
		{"editor", auth.ResourceCMS, auth.ActionWrite, true},
		{"editor", auth.ResourceSettings, auth.ActionWrite, false},
		{"manager", auth.ResourceCampaigns, auth.ActionWrite, true},
	}

	for _, tt := range tests {
		got, err := svc.HasPermission(tt.role, tt.resource, tt.action)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.role, tt.resource, tt.action)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(t.Context(), nil)
	require.Error(t, err)
}
