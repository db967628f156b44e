// Package campaigns serves the campaign form and list.
package campaigns

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/campaign"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// Path is the path of the campaigns resource.
const Path = handler.APIPath + "/campaigns"

// Service is the campaigns handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the campaigns handler.
var Handler = Service{}

// Init initializes the campaigns handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	read := deps.Auth.Guard(auth.ResourceCampaigns, auth.ActionRead)
	write := deps.Auth.Guard(auth.ResourceCampaigns, auth.ActionWrite)

	app.Get(Path, read, s.List)
	app.Get(Path+"/:id", read, s.Get)
	app.Post(Path, write, s.Create)
	app.Delete(Path+"/:id", write, s.Delete)

	return nil
}

// List returns one page of campaigns.
func (s *Service) List(c fiber.Ctx) error {
	page, limit := handler.Page(c)

	items, total, err := campaign.List(s.deps.DB, page, limit)
	if err != nil {
		return handler.FromDomain(err)
	}

	return c.JSON(handler.NewPage(items, total, page, limit))
}

// Get returns one campaign with its brand and assignments.
func (s *Service) Get(c fiber.Ctx) error {
	id, err := handler.ID(c)
	if err != nil {
		return err
	}

	out, err := campaign.Get(s.deps.DB, id)
	if err != nil {
		return handler.FromDomain(err)
	}

	return c.JSON(out)
}

// Create validates and stores a campaign with its assignments.
func (s *Service) Create(c fiber.Ctx) error {
	var in campaign.Input
	if err := s.deps.Bind(c, &in); err != nil {
		return err
	}

	out, err := campaign.Create(s.deps.DB, in)
	if err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.CampaignCreated, fiber.Map{
		"id":          out.ID,
		"name":        out.Name,
		"brandId":     out.BrandID,
		"budget":      out.Budget,
		"influencers": len(out.Assignments),
	})

	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete removes a campaign and its assignments.
func (s *Service) Delete(c fiber.Ctx) error {
	id, err := handler.ID(c)
	if err != nil {
		return err
	}

	if err := campaign.Delete(s.deps.DB, id); err != nil {
		return handler.FromDomain(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
