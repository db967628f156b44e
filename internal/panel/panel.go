// Package panel describes the settings panels and validates values written into master config.
package panel

import (
	"fmt"
	"math"
	"slices"

	"github.com/pkg/errors"
)

// Kind is the type of input a control renders.
type Kind string

// Control kinds.
const (
	KindSwitch Kind = "switch"
	KindInput  Kind = "input"
	KindNumber Kind = "number"
	KindSelect Kind = "select"
)

var (
	// ErrUnknownPanel is returned when no panel has the requested id.
	ErrUnknownPanel = errors.New("unknown settings panel")
	// ErrUnknownKey is returned when a key does not belong to the panel.
	ErrUnknownKey = errors.New("key does not belong to panel")
	// ErrInvalidValue is returned when a value does not match its control.
	ErrInvalidValue = errors.New("invalid value")
)

// Control is one labelled input bound to a master config key.
type Control struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"kind"`
	Default any      `json:"default"`
	Options []string `json:"options,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// Panel groups the controls of one settings page.
type Panel struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Controls []Control `json:"controls"`
}

// Has reports whether key is one of the panel controls.
func (p Panel) Has(key string) bool {
	_, ok := p.Control(key)
	return ok
}

// Control returns the control bound to key.
func (p Panel) Control(key string) (Control, bool) {
	for _, c := range p.Controls {
		if c.Key == key {
			return c, true
		}
	}

	return Control{}, false
}

// Validate checks that v is acceptable for the control. A nil value resets the key and is always valid.
func (c Control) Validate(v any) error {
	if v == nil {
		return nil
	}

	switch c.Kind {
	case KindSwitch:
		if _, ok := v.(bool); !ok {
			return errors.Wrapf(ErrInvalidValue, "%s must be a boolean", c.Key)
		}
	case KindInput:
		if _, ok := v.(string); !ok {
			return errors.Wrapf(ErrInvalidValue, "%s must be a string", c.Key)
		}
	case KindSelect:
		s, ok := v.(string)
		if !ok || !slices.Contains(c.Options, s) {
			return errors.Wrapf(ErrInvalidValue, "%s must be one of %v", c.Key, c.Options)
		}
	case KindNumber:
		n, ok := v.(float64)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return errors.Wrapf(ErrInvalidValue, "%s must be a number", c.Key)
		}
		if c.Min != nil && n < *c.Min {
			return errors.Wrapf(ErrInvalidValue, "%s must be >= %v", c.Key, *c.Min)
		}
		if c.Max != nil && n > *c.Max {
			return errors.Wrapf(ErrInvalidValue, "%s must be <= %v", c.Key, *c.Max)
		}
	default:
		return fmt.Errorf("control %s has unsupported kind %q", c.Key, c.Kind) //nolint:err113
	}

	return nil
}

// All returns every registered panel in display order.
func All() []Panel {
	return registry
}

// Find returns the panel with the given id.
func Find(id string) (Panel, error) {
	for _, p := range registry {
		if p.ID == id {
			return p, nil
		}
	}

	return Panel{}, errors.Wrap(ErrUnknownPanel, id)
}

// Lookup returns the control bound to key in any panel.
func Lookup(key string) (Control, bool) {
	c, ok := index[key]
	return c, ok
}

// ValidatePatch checks that every key belongs to the panel and every value matches its control.
func (p Panel) ValidatePatch(patch map[string]any) error {
	for key, v := range patch {
		c, ok := p.Control(key)
		if !ok {
			return errors.Wrapf(ErrUnknownKey, "%s is not part of %s", key, p.ID)
		}

		if err := c.Validate(v); err != nil {
			return err
		}
	}

	return nil
}

// ValidateKnown checks the values of keys that belong to a registered control.
// Keys without a control are accepted as-is.
func ValidateKnown(values map[string]any) error {
	for key, v := range values {
		c, ok := Lookup(key)
		if !ok {
			continue
		}

		if err := c.Validate(v); err != nil {
			return err
		}
	}

	return nil
}

// Defaults returns the default value of every control keyed by control key.
func Defaults() map[string]any {
	out := make(map[string]any, len(index))
	for key, c := range index {
		out[key] = c.Default
	}

	return out
}

// Values resolves the current value of every panel control from the stored master config.
func (p Panel) Values(stored map[string]any) map[string]any {
	out := make(map[string]any, len(p.Controls))
	for _, c := range p.Controls {
		if v, ok := stored[c.Key]; ok {
			out[c.Key] = v
			continue
		}

		out[c.Key] = c.Default
	}

	return out
}
