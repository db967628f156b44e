// Package platform stores the platform settings aggregate: commission, feature flags and master config.
package platform

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/setting"
	"github.com/AgencyAdmin/AgencyAdmin/internal/panel"
)

const (
	// SettingKey is the key used to store the platform settings in the database.
	SettingKey = "platform.settings"

	// DefaultCommission is the commission percentage used until one is saved.
	DefaultCommission = 10.0
)

var (
	// ErrInvalidCommission is returned when the commission is not a percentage.
	ErrInvalidCommission = errors.New("commission must be between 0 and 100")
	// ErrInvalidBlob is returned when a blob is neither a JSON object nor a string holding one.
	ErrInvalidBlob = errors.New("value must be a JSON object")
	// ErrInvalidFlag is returned when a feature flag is not a boolean.
	ErrInvalidFlag = errors.New("feature flags must be booleans")
)

// Blob is a JSON object. It also decodes from a string containing a JSON object.
type Blob map[string]any

// UnmarshalJSON implements json.Unmarshaler.
func (b *Blob) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		data = []byte(s)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return ErrInvalidBlob
	}

	*b = m

	return nil
}

// Settings is the platform settings aggregate.
type Settings struct {
	Commission   float64         `json:"commission"`
	FeatureFlags map[string]bool `json:"featureFlags"`
	MasterConfig map[string]any  `json:"masterConfig"`
	Version      int64           `json:"version"`
	UpdatedAt    *time.Time      `json:"updatedAt,omitempty"`
}

// document is the persisted shape, the version lives on the settings row.
type document struct {
	Commission   float64         `json:"commission"`
	FeatureFlags map[string]bool `json:"featureFlags"`
	MasterConfig map[string]any  `json:"masterConfig"`
}

// Patch overwrites the top-level fields that are present.
type Patch struct {
	Commission   *float64 `json:"commission"`
	FeatureFlags *Blob    `json:"featureFlags"`
	MasterConfig *Blob    `json:"masterConfig"`
	Version      *int64   `json:"version"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Commission == nil && p.FeatureFlags == nil && p.MasterConfig == nil
}

// Default returns the settings used until the first save.
func Default() *Settings {
	return &Settings{
		Commission:   DefaultCommission,
		FeatureFlags: map[string]bool{},
		MasterConfig: panel.Defaults(),
	}
}

// Load loads the platform settings from the database, or the defaults if none are stored.
func Load(db *gorm.DB) (*Settings, error) {
	s, err := setting.Get(db, SettingKey)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(s.Value, &doc); err != nil {
		return nil, pkgerrors.Wrap(err, "decode platform settings")
	}

	out := &Settings{
		Commission:   doc.Commission,
		FeatureFlags: doc.FeatureFlags,
		MasterConfig: doc.MasterConfig,
		Version:      s.Version,
		UpdatedAt:    &s.UpdatedAt,
	}
	if out.FeatureFlags == nil {
		out.FeatureFlags = map[string]bool{}
	}
	if out.MasterConfig == nil {
		out.MasterConfig = map[string]any{}
	}

	return out, nil
}

// Validate checks the patch values without touching the database.
func (p Patch) Validate() error {
	if p.Commission != nil && (*p.Commission < 0 || *p.Commission > 100) {
		return ErrInvalidCommission
	}

	if p.FeatureFlags != nil {
		if _, err := flags(*p.FeatureFlags); err != nil {
			return err
		}
	}

	if p.MasterConfig != nil {
		if err := panel.ValidateKnown(*p.MasterConfig); err != nil {
			return err
		}
	}

	return nil
}

func flags(b Blob) (map[string]bool, error) {
	out := make(map[string]bool, len(b))
	for k, v := range b {
		on, ok := v.(bool)
		if !ok {
			return nil, pkgerrors.Wrap(ErrInvalidFlag, k)
		}

		out[k] = on
	}

	return out, nil
}

// Apply overwrites exactly the present fields of the patch. Each blob is replaced as a whole.
// A patch carrying a version fails with setting.ErrVersionConflict when it is stale.
func Apply(db *gorm.DB, p Patch) (*Settings, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return update(db, p.Version, func(s *Settings) error {
		if p.Commission != nil {
			s.Commission = *p.Commission
		}

		if p.FeatureFlags != nil {
			f, err := flags(*p.FeatureFlags)
			if err != nil {
				return err
			}

			s.FeatureFlags = f
		}

		if p.MasterConfig != nil {
			s.MasterConfig = map[string]any(*p.MasterConfig)
		}

		return nil
	})
}

// MergeMasterConfig updates individual master config keys. A nil value deletes the key.
func MergeMasterConfig(db *gorm.DB, changes map[string]any, expected *int64) (*Settings, error) {
	if err := panel.ValidateKnown(changes); err != nil {
		return nil, err
	}

	return update(db, expected, func(s *Settings) error {
		for k, v := range changes {
			if v == nil {
				delete(s.MasterConfig, k)
				continue
			}

			s.MasterConfig[k] = v
		}

		return nil
	})
}

// update loads, mutates and conditionally saves the settings. Without an expected version the
// write is retried against the latest version until it commits, so the last writer wins.
func update(db *gorm.DB, expected *int64, mutate func(*Settings) error) (*Settings, error) {
	for {
		current, err := Load(db)
		if err != nil {
			return nil, err
		}

		if expected != nil && *expected != current.Version {
			return nil, setting.ErrVersionConflict
		}

		if err := mutate(current); err != nil {
			return nil, err
		}

		version := current.Version

		row, err := setting.SaveJSON(db, SettingKey, document{
			Commission:   current.Commission,
			FeatureFlags: current.FeatureFlags,
			MasterConfig: current.MasterConfig,
		}, &version)
		if errors.Is(err, setting.ErrVersionConflict) && expected == nil {
			continue
		}
		if err != nil {
			return nil, err
		}

		current.Version = row.Version
		current.UpdatedAt = &row.UpdatedAt

		return current, nil
	}
}
