package setting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/dbtest"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()
	for _, s := range settings {
		require.NoError(t, db.Create(&s).Error, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := dbtest.Open(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		settingName   string
		seedData      []models.Setting
		expectedError error
		expectedValue []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			settingName:   "test",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			settingName:   "",
			expectedError: ErrSettingNameEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			settingName:   "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:        "successful get",
			dbParam:     db,
			settingName: "platform.settings",
			seedData: []models.Setting{
				{Name: "platform.settings", Value: []byte(`{"commission":10}`), Version: 3},
			},
			expectedValue: []byte(`{"commission":10}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			s, err := Get(tc.dbParam, tc.settingName)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, s)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.settingName, s.Name)
				assert.Equal(t, tc.expectedValue, s.Value)
				assert.Equal(t, int64(3), s.Version)
			}
		})
	}
}

func TestGetAll(t *testing.T) {
	db := dbtest.Open(t)

	_, err := GetAll(nil)
	require.ErrorIs(t, err, ErrDBNil)

	all, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, all)

	seedSettings(t, db, []models.Setting{
		{Name: "cms.draft", Value: []byte(`{}`)},
		{Name: "cms.master_config", Value: []byte(`{}`)},
		{Name: "platform.settings", Value: []byte(`{}`)},
	})

	all, err = GetAll(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "cms.draft", all[0].Name)
}

func TestSet(t *testing.T) {
	db := dbtest.Open(t)

	_, err := Set(nil, "x", nil)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = Set(db, "", nil)
	require.ErrorIs(t, err, ErrSettingNameEmpty)

	created, err := Set(db, "platform.settings", []byte(`{"commission":10}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)
	assert.NotZero(t, created.ID)

	updated, err := Set(db, "platform.settings", []byte(`{"commission":25}`))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, int64(2), updated.Version)

	stored, err := Get(db, "platform.settings")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"commission":25}`), stored.Value)
	assert.Equal(t, int64(2), stored.Version)
}

func TestSetIfVersion(t *testing.T) {
	testCases := []struct {
		name          string
		seedData      []models.Setting
		expected      int64
		expectedError error
		wantVersion   int64
	}{
		{
			name:        "create when absent",
			expected:    0,
			wantVersion: 1,
		},
		{
			name:          "absent but version expected",
			expected:      4,
			expectedError: ErrVersionConflict,
		},
		{
			name:        "matching version",
			seedData:    []models.Setting{{Name: "key", Value: []byte(`"old"`), Version: 2}},
			expected:    2,
			wantVersion: 3,
		},
		{
			name:          "stale version",
			seedData:      []models.Setting{{Name: "key", Value: []byte(`"old"`), Version: 5}},
			expected:      4,
			expectedError: ErrVersionConflict,
		},
		{
			name:          "exists but creation expected",
			seedData:      []models.Setting{{Name: "key", Value: []byte(`"old"`), Version: 1}},
			expected:      0,
			expectedError: ErrVersionConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := dbtest.Open(t)
			seedSettings(t, db, tc.seedData)

			s, err := SetIfVersion(db, "key", []byte(`"new"`), tc.expected)

			stored, getErr := Get(db, "key")

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, s)

				// nothing was written
				if len(tc.seedData) > 0 {
					require.NoError(t, getErr)
					assert.Equal(t, tc.seedData[0].Value, stored.Value)
					assert.Equal(t, tc.seedData[0].Version, stored.Version)
				} else {
					require.ErrorIs(t, getErr, ErrSettingNotFound)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantVersion, s.Version)
			require.NoError(t, getErr)
			assert.Equal(t, []byte(`"new"`), stored.Value)
			assert.Equal(t, tc.wantVersion, stored.Version)
		})
	}
}

func TestDeleteByName(t *testing.T) {
	db := dbtest.Open(t)

	require.ErrorIs(t, DeleteByName(nil, "x"), ErrDBNil)
	require.ErrorIs(t, DeleteByName(db, ""), ErrSettingNameEmpty)
	require.ErrorIs(t, DeleteByName(db, "missing"), ErrSettingNotFound)

	seedSettings(t, db, []models.Setting{{Name: "cms.draft", Value: []byte(`{}`)}})
	require.NoError(t, DeleteByName(db, "cms.draft"))

	_, err := Get(db, "cms.draft")
	require.ErrorIs(t, err, ErrSettingNotFound)
}

func TestJSONRoundTrip(t *testing.T) {
	db := dbtest.Open(t)

	type doc struct {
		Title string `json:"title"`
	}

	_, err := LoadJSON(db, "doc", &doc{})
	require.ErrorIs(t, err, ErrSettingNotFound)

	saved, err := SaveJSON(db, "doc", doc{Title: "one"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)

	stale := int64(7)
	_, err = SaveJSON(db, "doc", doc{Title: "two"}, &stale)
	require.ErrorIs(t, err, ErrVersionConflict)

	current := saved.Version
	_, err = SaveJSON(db, "doc", doc{Title: "two"}, &current)
	require.NoError(t, err)

	var got doc
	version, err := LoadJSON(db, "doc", &got)
	require.NoError(t, err)
	assert.Equal(t, "two", got.Title)
	assert.Equal(t, int64(2), version)
}
