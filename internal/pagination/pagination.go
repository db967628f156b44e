// Package pagination normalizes page parameters and computes page counts.
package pagination

const (
	// DefaultLimit is the page size used when none is given.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// Normalize clamps page to at least 1 and limit into 1..MaxLimit, defaulting to DefaultLimit.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return page, limit
}

// TotalPages returns ceil(count/limit), never less than one page.
func TotalPages(count int64, limit int) int {
	if limit < 1 {
		limit = DefaultLimit
	}

	pages := int((count + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		pages = 1
	}

	return pages
}

// Offset returns the number of rows to skip for page.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
