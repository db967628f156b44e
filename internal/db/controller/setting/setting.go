// Package setting provides versioned storage of named JSON settings blobs.
package setting

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to create/update a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrVersionConflict is returned when a conditional write sees a different stored version.
	ErrVersionConflict = errors.New("setting was modified concurrently")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var s models.Setting
	result := db.Where(nameQueryPattern, name).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &s, nil
}

// GetAll retrieves all settings ordered by name.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	if err := db.Order("name").Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

// Set creates or updates a setting by name, bumping its version (last write wins).
func Set(db *gorm.DB, name string, value []byte) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var out *models.Setting

	err := db.Transaction(func(tx *gorm.DB) error {
		var s models.Setting
		result := tx.Where(nameQueryPattern, name).First(&s)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s = models.Setting{Name: name, Value: value, Version: 1}
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
			out = &s

			return nil
		}
		if result.Error != nil {
			return result.Error
		}

		updated, err := bump(tx, &s, value)
		out = updated

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// SetIfVersion writes the setting only when the stored version equals expected.
// An expected version of 0 means the setting must not exist yet.
func SetIfVersion(db *gorm.DB, name string, value []byte, expected int64) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var out *models.Setting

	err := db.Transaction(func(tx *gorm.DB) error {
		var s models.Setting
		result := tx.Where(nameQueryPattern, name).First(&s)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if expected != 0 {
				return ErrVersionConflict
			}

			s = models.Setting{Name: name, Value: value, Version: 1}
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
			out = &s

			return nil
		}
		if result.Error != nil {
			return result.Error
		}

		if s.Version != expected {
			return ErrVersionConflict
		}

		updated, err := bump(tx, &s, value)
		out = updated

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// bump stores value and increments the version, guarded by the version that was read.
func bump(tx *gorm.DB, s *models.Setting, value []byte) (*models.Setting, error) {
	now := time.Now()

	result := tx.Model(&models.Setting{}).
		Where("id = ? AND version = ?", s.ID, s.Version).
		Updates(map[string]any{
			"value":      value,
			"version":    gorm.Expr("version + 1"),
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrVersionConflict
	}

	s.Value = value
	s.Version++
	s.UpdatedAt = now

	return s, nil
}

// DeleteByName deletes a setting by name.
func DeleteByName(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrSettingNameEmpty
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}

// LoadJSON unmarshals the named setting into v and returns its version.
func LoadJSON(db *gorm.DB, name string, v any) (int64, error) {
	s, err := Get(db, name)
	if err != nil {
		return 0, err
	}

	if err := json.Unmarshal(s.Value, v); err != nil {
		return 0, err
	}

	return s.Version, nil
}

// SaveJSON marshals v into the named setting. A nil expected version writes unconditionally.
func SaveJSON(db *gorm.DB, name string, v any, expected *int64) (*models.Setting, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	if expected == nil {
		return Set(db, name, data)
	}

	return SetIfVersion(db, name, data, *expected)
}
