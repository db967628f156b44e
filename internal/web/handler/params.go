package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/AgencyAdmin/AgencyAdmin/internal/pagination"
)

// Page reads the page and limit query parameters with defaults applied.
func Page(c fiber.Ctx) (int, int) {
	return pagination.Normalize(fiber.Query[int](c, "page"), fiber.Query[int](c, "limit"))
}

// ID parses the :id route parameter.
func ID(c fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, NewError(fiber.StatusBadRequest, "invalid id")
	}

	return id, nil
}

// ExpectedVersion returns the version the client expects to overwrite. A version in the body
// wins over the If-Match header, nil means the client sent none.
func ExpectedVersion(c fiber.Ctx, body *int64) (*int64, error) {
	if body != nil {
		return body, nil
	}

	raw := strings.TrimSpace(c.Get(HeaderIfMatch))
	if raw == "" || raw == "*" {
		return nil, nil //nolint:nilnil
	}

	raw = strings.Trim(strings.TrimPrefix(raw, "W/"), `"`)

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, NewError(fiber.StatusBadRequest, "invalid If-Match version")
	}

	return &v, nil
}

// SetVersion exposes the document version as X-Version and ETag.
func SetVersion(c fiber.Ctx, version int64) {
	v := strconv.FormatInt(version, 10)
	c.Set(HeaderVersion, v)
	c.Set(fiber.HeaderETag, `"`+v+`"`)
}

// PageResponse is a page of a list.
type PageResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPage builds a page response, nil items become an empty list.
func NewPage[T any](items []T, total int64, page, limit int) PageResponse[T] {
	if items == nil {
		items = []T{}
	}

	return PageResponse[T]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pagination.TotalPages(total, limit),
	}
}
