// Package newsletter serves the public newsletter signup and the admin list of subscribers.
package newsletter

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// Path is the path of the newsletter resource.
const Path = handler.APIPath + "/newsletter"

// SubscribeInput is the body of a signup.
type SubscribeInput struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	Source string `json:"source" validate:"max=100"`
}

// Service is the newsletter handler service.
type Service struct {
	handler.Service
	deps     *handler.Deps
	resource handler.Resource[models.NewsletterSubscriber]
}

// Handler is the newsletter handler.
var Handler = Service{}

// Init initializes the newsletter handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	app.Post(Path, deps.Limit(), s.Subscribe)

	s.resource = handler.Resource[models.NewsletterSubscriber]{
		Path:       Path,
		Permission: auth.ResourceNewsletter,
		NoCreate:   true,
		NoReplace:  true,
	}
	s.resource.Register(app, deps)

	return nil
}

// Subscribe adds an email address. Signing up twice returns the existing subscriber with 200.
func (s *Service) Subscribe(c fiber.Ctx) error {
	var in SubscribeInput
	if err := s.deps.Bind(c, &in); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	sub := models.NewsletterSubscriber{}

	result := s.deps.DB.Where(models.NewsletterSubscriber{Email: email}).
		Attrs(models.NewsletterSubscriber{Source: in.Source}).
		FirstOrCreate(&sub)
	if result.Error != nil {
		return handler.FromDomain(result.Error)
	}

	if result.RowsAffected == 0 {
		return c.JSON(sub)
	}

	s.deps.Emit(c, events.NewsletterSubscribed, fiber.Map{"id": sub.ID, "email": sub.Email, "source": sub.Source})

	return c.Status(fiber.StatusCreated).JSON(sub)
}
