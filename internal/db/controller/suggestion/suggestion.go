// Package suggestion completes brand and influencer names for the manual transaction form.
package suggestion

import (
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
)

// Suggestion kinds.
const (
	KindBrand      = "brand"
	KindInfluencer = "influencer"
)

// Limit is the maximum number of names returned.
const Limit = 8

// likeEscaper escapes LIKE wildcards with '!', which needs no quoting in any supported dialect.
var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// Names returns up to Limit distinct names containing query, case-insensitive, prefix matches first.
// An empty query or an unknown kind yields an empty list.
func Names(db *gorm.DB, kind, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}

	var (
		table  any
		column string
	)

	switch kind {
	case KindBrand:
		table, column = &models.Brand{}, "brand_name"
	case KindInfluencer:
		table, column = &models.Influencer{}, "influencer_name"
	default:
		return []string{}, nil
	}

	escaped := likeEscaper.Replace(strings.ToLower(query))
	prefix, contains := escaped+"%", "%"+escaped+"%"

	sources := []struct {
		model  any
		column string
	}{
		{table, "name"},
		{&models.ManualTransaction{}, column},
	}

	var names []string

	// prefix matches are fetched on their own so substring matches cannot crowd them out
	for _, src := range sources {
		found, err := pluck(db, src.model, src.column, "LOWER("+src.column+") LIKE ? ESCAPE '!'", prefix)
		if err != nil {
			return nil, err
		}

		names = append(names, found...)
	}

	for _, src := range sources {
		found, err := pluck(db, src.model, src.column,
			"LOWER("+src.column+") LIKE ? ESCAPE '!' AND LOWER("+src.column+") NOT LIKE ? ESCAPE '!'",
			contains, prefix)
		if err != nil {
			return nil, err
		}

		names = append(names, found...)
	}

	return merge(strings.ToLower(query), names), nil
}

func pluck(db *gorm.DB, model any, column, where string, args ...any) ([]string, error) {
	var out []string

	err := db.Model(model).
		Distinct(column).
		Where(where, args...).
		Order(column).
		Limit(Limit).
		Pluck(column, &out).Error

	return out, err
}

func merge(query string, names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(out[i]), query)
		pj := strings.HasPrefix(strings.ToLower(out[j]), query)

		return pi && !pj
	})

	if len(out) > Limit {
		out = out[:Limit]
	}

	return out
}
