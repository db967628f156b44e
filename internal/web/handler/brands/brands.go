// Package brands serves the brand form and list.
package brands

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/brand"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// Path is the path of the brands resource.
const Path = handler.APIPath + "/brands"

// Service is the brands handler service.
type Service struct {
	handler.Service
	resource handler.Resource[models.Brand]
}

// Handler is the brands handler.
var Handler = Service{}

// Init initializes the brands handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.resource = handler.Resource[models.Brand]{
		Path:       Path,
		Permission: auth.ResourceBrands,
		Order:      "name, id",
		Remove:     brand.Delete,
	}
	s.resource.Register(app, deps)

	return nil
}
