package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/crud"
)

// Resource registers list, get, create, replace and delete routes for a model over the crud controller.
// The hooks are optional.
type Resource[T any] struct {
	// Path is the collection path, items live at Path/:id.
	Path string
	// Permission is the RBAC resource guarding the routes.
	Permission string
	// Order is the list order clause.
	Order string

	// Filter narrows the list query from the request.
	Filter func(c fiber.Ctx) ([]crud.Scope, error)
	// Prepare runs after validation on create and replace. existing is nil on create.
	Prepare func(c fiber.Ctx, v *T, existing *T) error
	// Remove replaces the default delete.
	Remove func(db *gorm.DB, id uint64) error
	// Saved runs after a successful create or replace.
	Saved func(c fiber.Ctx, v *T, created bool)

	// ReadOnly registers only the list and get routes.
	ReadOnly bool
	// NoCreate skips the create route, used when creation happens on a public route.
	NoCreate bool
	// NoReplace skips the replace route.
	NoReplace bool

	deps *Deps
}

// Register adds the routes to app.
func (r *Resource[T]) Register(app *fiber.App, deps *Deps) {
	r.deps = deps

	read := deps.Auth.Guard(r.Permission, auth.ActionRead)
	write := deps.Auth.Guard(r.Permission, auth.ActionWrite)

	app.Get(r.Path, read, r.List)
	app.Get(r.Path+"/:id", read, r.Get)

	if r.ReadOnly {
		return
	}

	if !r.NoCreate {
		app.Post(r.Path, write, r.Create)
	}

	if !r.NoReplace {
		app.Put(r.Path+"/:id", write, r.Replace)
	}

	app.Delete(r.Path+"/:id", write, r.Delete)
}

// List returns one page of rows.
func (r *Resource[T]) List(c fiber.Ctx) error {
	page, limit := Page(c)

	var scopes []crud.Scope

	if r.Filter != nil {
		var err error
		if scopes, err = r.Filter(c); err != nil {
			return err
		}
	}

	order := r.Order
	if order == "" {
		order = "id DESC"
	}

	items, total, err := crud.List[T](r.deps.DB, page, limit, order, scopes...)
	if err != nil {
		return FromDomain(err)
	}

	return c.JSON(NewPage(items, total, page, limit))
}

// Get returns one row.
func (r *Resource[T]) Get(c fiber.Ctx) error {
	id, err := ID(c)
	if err != nil {
		return err
	}

	v, err := crud.Get[T](r.deps.DB, id)
	if err != nil {
		return FromDomain(err)
	}

	return c.JSON(v)
}

// Create validates and inserts the body.
func (r *Resource[T]) Create(c fiber.Ctx) error {
	v := new(T)
	if err := r.deps.Bind(c, v); err != nil {
		return err
	}

	if r.Prepare != nil {
		if err := r.Prepare(c, v, nil); err != nil {
			return FromDomain(err)
		}
	}

	if err := crud.Create(r.deps.DB, v); err != nil {
		return FromDomain(err)
	}

	if r.Saved != nil {
		r.Saved(c, v, true)
	}

	return c.Status(fiber.StatusCreated).JSON(v)
}

// Replace validates the body and overwrites the row.
func (r *Resource[T]) Replace(c fiber.Ctx) error {
	id, err := ID(c)
	if err != nil {
		return err
	}

	existing, err := crud.Get[T](r.deps.DB, id)
	if err != nil {
		return FromDomain(err)
	}

	v := new(T)
	if err := r.deps.Bind(c, v); err != nil {
		return err
	}

	if r.Prepare != nil {
		if err := r.Prepare(c, v, existing); err != nil {
			return FromDomain(err)
		}
	}

	out, err := crud.Update(r.deps.DB, id, v)
	if err != nil {
		return FromDomain(err)
	}

	if r.Saved != nil {
		r.Saved(c, out, false)
	}

	return c.JSON(out)
}

// Delete removes the row.
func (r *Resource[T]) Delete(c fiber.Ctx) error {
	id, err := ID(c)
	if err != nil {
		return err
	}

	remove := r.Remove
	if remove == nil {
		remove = crud.Delete[T]
	}

	if err := remove(r.deps.DB, id); err != nil {
		return FromDomain(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// BoolQuery parses an optional boolean query parameter.
func BoolQuery(c fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, NewError(fiber.StatusBadRequest, "invalid "+key+" query parameter")
	}

	return &v, nil
}
