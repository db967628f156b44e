// Package crud implements list, get, create, update and delete for simple admin tables.
package crud

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/pagination"
)

var (
	// ErrNotFound is returned when no row has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("record already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

const idQuery = "id = ?"

// Scope narrows a list query.
type Scope = func(*gorm.DB) *gorm.DB

// List returns one page of rows ordered by order, and the total count matching the scopes.
func List[T any](db *gorm.DB, page, limit int, order string, scopes ...Scope) ([]T, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	page, limit = pagination.Normalize(page, limit)

	var count int64
	if err := db.Model(new(T)).Scopes(scopes...).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	rows := []T{}
	err := db.Scopes(scopes...).
		Order(order).
		Offset(pagination.Offset(page, limit)).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, count, nil
}

// Get returns the row with the given id.
func Get[T any](db *gorm.DB, id uint64) (*T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	v := new(T)
	if err := db.First(v, id).Error; err != nil {
		return nil, translate(err)
	}

	return v, nil
}

// Create inserts v.
func Create[T any](db *gorm.DB, v *T) error {
	if db == nil {
		return ErrDBNil
	}

	return translate(db.Create(v).Error)
}

// Update overwrites every column of the row with the given id with the values of v,
// zero values included, and returns the stored row.
func Update[T any](db *gorm.DB, id uint64, v *T) (*T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := Get[T](db, id); err != nil {
		return nil, err
	}

	err := db.Model(new(T)).
		Where(idQuery, id).
		Select("*").
		Omit("id", "created_at").
		Updates(v).Error
	if err != nil {
		return nil, translate(err)
	}

	return Get[T](db, id)
}

// Delete removes the row with the given id.
func Delete[T any](db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
