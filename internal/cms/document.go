package cms

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
)

// Collection names as used in the API paths.
const (
	BlogPosts       = "blogPosts"
	FAQs            = "faqs"
	Testimonials    = "testimonials"
	NavItems        = "navItems"
	PricingPackages = "pricingPackages"
	MediaAssets     = "mediaAssets"
)

// ErrUnknownCollection is returned for a collection name that is not part of the document.
var ErrUnknownCollection = errors.New("unknown collection")

// Document is the whole content tree of the marketing site.
type Document struct {
	Copy            map[string]string `json:"copy"`
	BlogPosts       []BlogPost        `json:"blogPosts" validate:"dive"`
	FAQs            []FAQ             `json:"faqs" validate:"dive"`
	Testimonials    []Testimonial     `json:"testimonials" validate:"dive"`
	NavItems        []NavItem         `json:"navItems" validate:"dive"`
	PricingPackages []PricingPackage  `json:"pricingPackages" validate:"dive"`
	MediaAssets     []MediaAsset      `json:"mediaAssets" validate:"dive"`
}

// New returns an empty document.
func New() *Document {
	d := &Document{}
	d.normalize()

	return d
}

// Collections lists the collection names in document order.
func Collections() []string {
	return []string{BlogPosts, FAQs, Testimonials, NavItems, PricingPackages, MediaAssets}
}

func (d *Document) normalize() {
	if d.Copy == nil {
		d.Copy = map[string]string{}
	}
	if d.BlogPosts == nil {
		d.BlogPosts = []BlogPost{}
	}
	if d.FAQs == nil {
		d.FAQs = []FAQ{}
	}
	if d.Testimonials == nil {
		d.Testimonials = []Testimonial{}
	}
	if d.NavItems == nil {
		d.NavItems = []NavItem{}
	}
	if d.PricingPackages == nil {
		d.PricingPackages = []PricingPackage{}
	}
	if d.MediaAssets == nil {
		d.MediaAssets = []MediaAsset{}
	}
}

// Prepare fills empty lists, assigns missing ids and validates every item.
func (d *Document) Prepare(v *validator.Validate) error {
	d.normalize()

	var err error
	if d.BlogPosts, err = ensureIDs(d.BlogPosts); err != nil {
		return pkgerrors.Wrap(err, BlogPosts)
	}
	if d.FAQs, err = ensureIDs(d.FAQs); err != nil {
		return pkgerrors.Wrap(err, FAQs)
	}
	if d.Testimonials, err = ensureIDs(d.Testimonials); err != nil {
		return pkgerrors.Wrap(err, Testimonials)
	}
	if d.NavItems, err = ensureIDs(d.NavItems); err != nil {
		return pkgerrors.Wrap(err, NavItems)
	}
	if d.PricingPackages, err = ensureIDs(d.PricingPackages); err != nil {
		return pkgerrors.Wrap(err, PricingPackages)
	}
	if d.MediaAssets, err = ensureIDs(d.MediaAssets); err != nil {
		return pkgerrors.Wrap(err, MediaAssets)
	}

	return v.Struct(d)
}

// Add decodes raw as an item of the collection, validates and appends it.
func (d *Document) Add(collection string, raw []byte, v *validator.Validate) (any, error) {
	o, err := d.ops(collection, v)
	if err != nil {
		return nil, err
	}

	return o.add(raw)
}

// Update replaces the item with the given id in the collection.
func (d *Document) Update(collection, id string, raw []byte, v *validator.Validate) (any, error) {
	o, err := d.ops(collection, v)
	if err != nil {
		return nil, err
	}

	return o.replace(id, raw)
}

// Delete removes the item with the given id from the collection.
func (d *Document) Delete(collection, id string) error {
	o, err := d.ops(collection, nil)
	if err != nil {
		return err
	}

	return o.remove(id)
}

type listOps struct {
	add     func(raw []byte) (any, error)
	replace func(id string, raw []byte) (any, error)
	remove  func(id string) error
}

func (d *Document) ops(collection string, v *validator.Validate) (listOps, error) {
	d.normalize()

	switch collection {
	case BlogPosts:
		return bind(&d.BlogPosts, v), nil
	case FAQs:
		return bind(&d.FAQs, v), nil
	case Testimonials:
		return bind(&d.Testimonials, v), nil
	case NavItems:
		return bind(&d.NavItems, v), nil
	case PricingPackages:
		return bind(&d.PricingPackages, v), nil
	case MediaAssets:
		return bind(&d.MediaAssets, v), nil
	default:
		return listOps{}, pkgerrors.Wrap(ErrUnknownCollection, collection)
	}
}

func bind[T Item[T]](list *[]T, v *validator.Validate) listOps {
	decode := func(raw []byte) (T, error) {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return item, err
		}

		if v != nil {
			if err := v.Struct(item); err != nil {
				return item, err
			}
		}

		return item, nil
	}

	return listOps{
		add: func(raw []byte) (any, error) {
			item, err := decode(raw)
			if err != nil {
				return nil, err
			}

			out, added, err := Append(*list, item)
			if err != nil {
				return nil, err
			}

			*list = out

			return added, nil
		},
		replace: func(id string, raw []byte) (any, error) {
			item, err := decode(raw)
			if err != nil {
				return nil, err
			}

			out, replaced, err := Replace(*list, id, item)
			if err != nil {
				return nil, err
			}

			*list = out

			return replaced, nil
		},
		remove: func(id string) error {
			out, err := Remove(*list, id)
			if err != nil {
				return err
			}

			*list = out

			return nil
		},
	}
}
