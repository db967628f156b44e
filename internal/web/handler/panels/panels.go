// Package panels serves the settings panels backed by the master config.
package panels

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/platform"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/panel"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// Path is the path of the settings panels.
const Path = handler.APIPath + "/settings/panels"

// Summary is one entry of the panel list.
type Summary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Controls int    `json:"controls"`
}

// ControlValue is a control with its current value.
type ControlValue struct {
	panel.Control
	Value any `json:"value"`
}

// Detail is a panel with the current values of its controls.
type Detail struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Controls []ControlValue `json:"controls"`
	Version  int64          `json:"version"`
}

// Service is the settings panels handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the settings panels handler.
var Handler = Service{}

// Init initializes the settings panels handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	app.Get(Path, deps.Auth.Guard(auth.ResourceSettings, auth.ActionRead), s.List)
	app.Get(Path+"/:panel", deps.Auth.Guard(auth.ResourceSettings, auth.ActionRead), s.Get)
	app.Patch(Path+"/:panel", deps.Auth.Guard(auth.ResourceSettings, auth.ActionWrite), s.Patch)

	return nil
}

// List returns every panel with its control count.
func (s *Service) List(c fiber.Ctx) error {
	all := panel.All()

	out := make([]Summary, len(all))
	for i, p := range all {
		out[i] = Summary{ID: p.ID, Title: p.Title, Controls: len(p.Controls)}
	}

	return c.JSON(out)
}

func detail(p panel.Panel, settings *platform.Settings) Detail {
	values := p.Values(settings.MasterConfig)

	controls := make([]ControlValue, len(p.Controls))
	for i, ctl := range p.Controls {
		controls[i] = ControlValue{Control: ctl, Value: values[ctl.Key]}
	}

	return Detail{ID: p.ID, Title: p.Title, Controls: controls, Version: settings.Version}
}

// Get returns the controls of one panel with their stored or default values.
func (s *Service) Get(c fiber.Ctx) error {
	p, err := panel.Find(c.Params("panel"))
	if err != nil {
		return handler.FromDomain(err)
	}

	settings, err := platform.Load(s.deps.DB)
	if err != nil {
		return handler.FromDomain(err)
	}

	handler.SetVersion(c, settings.Version)

	return c.JSON(detail(p, settings))
}

// Patch validates the body against the panel controls and merges it into the master config.
func (s *Service) Patch(c fiber.Ctx) error {
	p, err := panel.Find(c.Params("panel"))
	if err != nil {
		return handler.FromDomain(err)
	}

	changes := map[string]any{}
	if err := s.deps.Decode(c, &changes); err != nil {
		return err
	}

	if len(changes) == 0 {
		return handler.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	if err := p.ValidatePatch(changes); err != nil {
		return handler.FromDomain(err)
	}

	expected, err := handler.ExpectedVersion(c, nil)
	if err != nil {
		return err
	}

	settings, err := platform.MergeMasterConfig(s.deps.DB, changes, expected)
	if err != nil {
		return handler.FromDomain(err)
	}

	s.deps.Emit(c, events.SettingsUpdated, map[string]any{"panel": p.ID, "keys": changes})
	handler.SetVersion(c, settings.Version)

	return c.JSON(detail(p, settings))
}
