// Package influencers serves the influencer form, list and approval toggle.
package influencers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/crud"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/influencer"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// Path is the path of the influencers resource.
const Path = handler.APIPath + "/influencers"

// ApprovalInput is the body of an approval change. A missing value flips the flag.
type ApprovalInput struct {
	Approved *bool `json:"approved"`
}

// Service is the influencers handler service.
type Service struct {
	handler.Service
	deps     *handler.Deps
	resource handler.Resource[models.Influencer]
}

// Handler is the influencers handler.
var Handler = Service{}

// Init initializes the influencers handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	app.Patch(Path+"/:id/approval", deps.Auth.Guard(auth.ResourceInfluencers, auth.ActionWrite), s.Approval)

	s.resource = handler.Resource[models.Influencer]{
		Path:       Path,
		Permission: auth.ResourceInfluencers,
		Order:      influencer.Order,
		Filter:     approvedFilter,
		Remove:     influencer.Delete,
	}
	s.resource.Register(app, deps)

	return nil
}

func approvedFilter(c fiber.Ctx) ([]crud.Scope, error) {
	approved, err := handler.BoolQuery(c, "approved")
	if err != nil {
		return nil, err
	}

	return influencer.Approved(approved), nil
}

// Approval sets or flips the approval flag of an influencer.
func (s *Service) Approval(c fiber.Ctx) error {
	id, err := handler.ID(c)
	if err != nil {
		return err
	}

	var in ApprovalInput
	if len(c.Body()) > 0 {
		if err := s.deps.Decode(c, &in); err != nil {
			return err
		}
	}

	inf, err := influencer.SetApproval(s.deps.DB, id, in.Approved)
	if err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.InfluencerApproval, fiber.Map{"id": inf.ID, "approved": inf.Approved})

	return c.JSON(inf)
}
