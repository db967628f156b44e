// Package cms serves the draft and published marketing content.
package cms

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	content "github.com/AgencyAdmin/AgencyAdmin/internal/cms"
	controller "github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/content"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

const (
	// Path is the path of the cms draft.
	Path = handler.APIPath + "/cms"

	// PublishedPath serves the published document to the marketing site.
	PublishedPath = Path + "/published"

	// PublishPath publishes the draft or a whole document.
	PublishPath = Path + "/publish"

	// CopyPath replaces the copy texts of the draft.
	CopyPath = Path + "/copy"
)

// ItemResponse is returned by item mutations.
type ItemResponse struct {
	Item    any   `json:"item,omitempty"`
	Version int64 `json:"version"`
}

// Service is the cms handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the cms handler.
var Handler = Service{}

// Init initializes the cms handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	read := deps.Auth.Guard(auth.ResourceCMS, auth.ActionRead)
	write := deps.Auth.Guard(auth.ResourceCMS, auth.ActionWrite)

	// public, read-only
	app.Get(PublishedPath, s.Published)

	app.Get(Path, read, s.Draft)
	app.Put(CopyPath, write, s.PutCopy)
	app.Post(PublishPath, write, s.Publish)
	app.Post(Path+"/:collection", write, s.AddItem)
	app.Put(Path+"/:collection/:id", write, s.UpdateItem)
	app.Delete(Path+"/:collection/:id", write, s.DeleteItem)

	return nil
}

func (s *Service) respond(c fiber.Ctx, v *controller.Versioned) error {
	handler.SetVersion(c, v.Version)
	return c.JSON(v)
}

// Published returns the published document.
func (s *Service) Published(c fiber.Ctx) error {
	v, err := controller.Published(s.deps.DB)
	if err != nil {
		return handler.FromDomain(err)
	}

	return s.respond(c, v)
}

// Draft returns the draft, falling back to the published document.
func (s *Service) Draft(c fiber.Ctx) error {
	v, err := controller.Draft(s.deps.DB)
	if err != nil {
		return handler.FromDomain(err)
	}

	return s.respond(c, v)
}

func (s *Service) mutate(c fiber.Ctx, fn func(*content.Document) (any, error)) error {
	expected, err := handler.ExpectedVersion(c, nil)
	if err != nil {
		return err
	}

	var item any

	v, err := controller.MutateDraft(s.deps.DB, expected, func(d *content.Document) error {
		var err error
		item, err = fn(d)

		return err
	})
	if err != nil {
		return handler.FromDomain(err)
	}

	handler.SetVersion(c, v.Version)

	return c.JSON(ItemResponse{Item: item, Version: v.Version})
}

// AddItem appends an item to a collection of the draft.
func (s *Service) AddItem(c fiber.Ctx) error {
	collection := c.Params("collection")
	raw := c.Body()

	return s.mutate(c, func(d *content.Document) (any, error) {
		return d.Add(collection, raw, s.deps.Validator)
	})
}

// UpdateItem replaces an item of the draft.
func (s *Service) UpdateItem(c fiber.Ctx) error {
	collection, id := c.Params("collection"), c.Params("id")
	raw := c.Body()

	return s.mutate(c, func(d *content.Document) (any, error) {
		return d.Update(collection, id, raw, s.deps.Validator)
	})
}

// DeleteItem removes an item from the draft.
func (s *Service) DeleteItem(c fiber.Ctx) error {
	collection, id := c.Params("collection"), c.Params("id")

	return s.mutate(c, func(d *content.Document) (any, error) {
		return nil, d.Delete(collection, id)
	})
}

// PutCopy replaces the copy texts of the draft.
func (s *Service) PutCopy(c fiber.Ctx) error {
	texts := map[string]string{}
	if err := s.deps.Decode(c, &texts); err != nil {
		return err
	}

	return s.mutate(c, func(d *content.Document) (any, error) {
		d.Copy = texts
		return texts, nil
	})
}

// Publish publishes the draft. A request body is published as the whole document instead.
func (s *Service) Publish(c fiber.Ctx) error {
	expected, err := handler.ExpectedVersion(c, nil)
	if err != nil {
		return err
	}

	var doc *content.Document

	if len(c.Body()) > 0 {
		doc = content.New()
		if err := s.deps.Decode(c, doc); err != nil {
			return err
		}

		if err := doc.Prepare(s.deps.Validator); err != nil {
			return handler.FromDomain(err)
		}
	}

	v, err := controller.Publish(s.deps.DB, doc, expected)
	if err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.CMSPublished, map[string]any{"version": v.Version})

	return s.respond(c, v)
}
