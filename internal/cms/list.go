// Package cms holds the content document edited by the admin and the list operations over it.
package cms

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrItemNotFound is returned when no item has the requested id.
	ErrItemNotFound = errors.New("item not found")
	// ErrDuplicateID is returned when an appended item reuses an existing id.
	ErrDuplicateID = errors.New("item id already exists")
)

// Item is an element of a content list identified by a string id.
type Item[T any] interface {
	Key() string
	WithKey(id string) T
}

// Append adds item at the end of list, assigning a new id when it has none.
func Append[T Item[T]](list []T, item T) ([]T, T, error) {
	if item.Key() == "" {
		item = item.WithKey(uuid.NewString())
	}

	if _, err := indexOf(list, item.Key()); err == nil {
		return list, item, ErrDuplicateID
	}

	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, item)

	return out, item, nil
}

// Replace swaps the item with the given id for item, keeping its position and id.
func Replace[T Item[T]](list []T, id string, item T) ([]T, T, error) {
	i, err := indexOf(list, id)
	if err != nil {
		return list, item, err
	}

	item = item.WithKey(id)

	out := make([]T, len(list))
	copy(out, list)
	out[i] = item

	return out, item, nil
}

// Remove deletes exactly the item with the given id, sibling order is unchanged.
func Remove[T Item[T]](list []T, id string) ([]T, error) {
	i, err := indexOf(list, id)
	if err != nil {
		return list, err
	}

	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)

	return out, nil
}

// Find returns the item with the given id.
func Find[T Item[T]](list []T, id string) (T, error) {
	i, err := indexOf(list, id)
	if err != nil {
		var zero T
		return zero, err
	}

	return list[i], nil
}

func indexOf[T Item[T]](list []T, id string) (int, error) {
	for i, it := range list {
		if it.Key() == id {
			return i, nil
		}
	}

	return -1, ErrItemNotFound
}

// ensureIDs gives every item without an id a new one and reports a reused id.
func ensureIDs[T Item[T]](list []T) ([]T, error) {
	seen := make(map[string]struct{}, len(list))

	for i, it := range list {
		if it.Key() == "" {
			it = it.WithKey(uuid.NewString())
			list[i] = it
		}

		if _, dup := seen[it.Key()]; dup {
			return list, ErrDuplicateID
		}

		seen[it.Key()] = struct{}{}
	}

	return list, nil
}
