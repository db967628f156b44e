// Package content persists the draft and published CMS documents.
package content

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/cms"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/setting"
)

const (
	// DraftKey stores the document being edited.
	DraftKey = "cms.draft"
	// PublishedKey stores the document served to the marketing site.
	PublishedKey = "cms.master_config"
)

// Versioned is a document with the version of its settings row.
type Versioned struct {
	Document *cms.Document `json:"document"`
	Version  int64         `json:"version"`
}

func load(db *gorm.DB, key string) (*cms.Document, int64, error) {
	doc := cms.New()

	version, err := setting.LoadJSON(db, key, doc)
	if err != nil {
		return nil, 0, err
	}

	return doc, version, nil
}

// Published returns the published document, an empty one when nothing was published.
func Published(db *gorm.DB) (*Versioned, error) {
	doc, version, err := load(db, PublishedKey)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return &Versioned{Document: cms.New()}, nil
	}
	if err != nil {
		return nil, err
	}

	return &Versioned{Document: doc, Version: version}, nil
}

// Draft returns the draft document. Without a draft the published document is the starting point
// and the reported version is 0, since the draft row does not exist yet.
func Draft(db *gorm.DB) (*Versioned, error) {
	doc, version, err := load(db, DraftKey)
	if err == nil {
		return &Versioned{Document: doc, Version: version}, nil
	}
	if !errors.Is(err, setting.ErrSettingNotFound) {
		return nil, err
	}

	published, err := Published(db)
	if err != nil {
		return nil, err
	}

	return &Versioned{Document: published.Document}, nil
}

// MutateDraft applies fn to the draft and stores it. With an expected version a stale draft fails
// with setting.ErrVersionConflict, without one the write is retried against the latest draft.
func MutateDraft(db *gorm.DB, expected *int64, fn func(*cms.Document) error) (*Versioned, error) {
	for {
		current, err := Draft(db)
		if err != nil {
			return nil, err
		}

		if expected != nil && *expected != current.Version {
			return nil, setting.ErrVersionConflict
		}

		if err := fn(current.Document); err != nil {
			return nil, err
		}

		version := current.Version

		row, err := setting.SaveJSON(db, DraftKey, current.Document, &version)
		if errors.Is(err, setting.ErrVersionConflict) && expected == nil {
			continue
		}
		if err != nil {
			return nil, err
		}

		current.Version = row.Version

		return current, nil
	}
}

// Publish stores doc as the published document, or the current draft when doc is nil.
// The expected version guards the draft row, the version editors see. A published document
// also becomes the new draft and the returned version is the draft's.
func Publish(db *gorm.DB, doc *cms.Document, expected *int64) (*Versioned, error) {
	var out *Versioned

	err := db.Transaction(func(tx *gorm.DB) error {
		if doc == nil {
			draft, err := Draft(tx)
			if err != nil {
				return err
			}

			doc = draft.Document
		}

		row, err := setting.SaveJSON(tx, DraftKey, doc, expected)
		if err != nil {
			return err
		}

		if _, err := setting.SaveJSON(tx, PublishedKey, doc, nil); err != nil {
			return err
		}

		out = &Versioned{Document: doc, Version: row.Version}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
