// Package platformsettings serves the platform settings aggregate.
package platformsettings

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/platform"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

const (
	// Path is the path of the platform settings resource.
	Path = handler.APIPath + "/platform-settings"

	// MasterConfigPath merges individual master config keys.
	MasterConfigPath = Path + "/master-config"
)

// Service is the platform settings handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the platform settings handler.
var Handler = Service{}

// Init initializes the platform settings handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	app.Get(Path, deps.Auth.Guard(auth.ResourceSettings, auth.ActionRead), s.Get)
	app.Patch(Path, deps.Auth.Guard(auth.ResourceSettings, auth.ActionWrite), s.Patch)
	app.Patch(MasterConfigPath, deps.Auth.Guard(auth.ResourceSettings, auth.ActionWrite), s.PatchMasterConfig)

	return nil
}

// Get returns the stored settings or the defaults.
func (s *Service) Get(c fiber.Ctx) error {
	settings, err := platform.Load(s.deps.DB)
	if err != nil {
		return handler.FromDomain(err)
	}

	handler.SetVersion(c, settings.Version)

	return c.JSON(settings)
}

// Patch overwrites the top-level fields present in the body.
func (s *Service) Patch(c fiber.Ctx) error {
	var p platform.Patch
	if err := s.deps.Bind(c, &p); err != nil {
		return err
	}

	expected, err := handler.ExpectedVersion(c, p.Version)
	if err != nil {
		return err
	}

	p.Version = expected

	if p.Empty() {
		return handler.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	settings, err := platform.Apply(s.deps.DB, p)
	if err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.SettingsUpdated, settings)
	handler.SetVersion(c, settings.Version)

	return c.JSON(settings)
}

// PatchMasterConfig merges the body keys into the master config, null deletes a key.
func (s *Service) PatchMasterConfig(c fiber.Ctx) error {
	changes := map[string]any{}
	if err := s.deps.Decode(c, &changes); err != nil {
		return err
	}

	if len(changes) == 0 {
		return handler.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	expected, err := handler.ExpectedVersion(c, nil)
	if err != nil {
		return err
	}

	settings, err := platform.MergeMasterConfig(s.deps.DB, changes, expected)
	if err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.SettingsUpdated, settings)
	handler.SetVersion(c, settings.Version)

	return c.JSON(settings)
}
