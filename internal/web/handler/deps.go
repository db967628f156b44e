package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/mail"
	"github.com/AgencyAdmin/AgencyAdmin/internal/media"
	"github.com/AgencyAdmin/AgencyAdmin/internal/webhook"
)

// Deps bundles what the handler services need.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Auth      *auth.Service
	Events    events.Publisher
	Mail      *mail.Notifier
	Webhooks  *webhook.Dispatcher
	Media     *media.Store
	Validator *validator.Validate

	// PublicLimiter throttles unauthenticated write endpoints.
	PublicLimiter fiber.Handler
}

// Valid reports whether the required dependencies are set.
func (d *Deps) Valid() bool {
	return d != nil && d.DB != nil && d.Auth != nil
}

// Emit publishes an event when an event publisher is configured.
func (d *Deps) Emit(c fiber.Ctx, name string, payload any) {
	if d.Events == nil {
		return
	}

	d.Events.Emit(c.Context(), name, payload)
}

// Limit returns the public limiter, or a pass-through handler when none is configured.
func (d *Deps) Limit() fiber.Handler {
	if d.PublicLimiter != nil {
		return d.PublicLimiter
	}

	return func(c fiber.Ctx) error {
		return c.Next()
	}
}

// Validate runs the struct validator on v.
func (d *Deps) Validate(v any) error {
	if d.Validator == nil {
		d.Validator = validator.New()
	}

	if err := d.Validator.Struct(v); err != nil {
		return ValidationError(err)
	}

	return nil
}

// Decode decodes the JSON body into v without validating it.
func (d *Deps) Decode(c fiber.Ctx, v any) error {
	if err := c.Bind().JSON(v); err != nil {
		return NewError(fiber.StatusBadRequest, "invalid JSON body", err.Error())
	}

	return nil
}

// Bind decodes the JSON body into the struct v and validates it.
func (d *Deps) Bind(c fiber.Ctx, v any) error {
	if err := d.Decode(c, v); err != nil {
		return err
	}

	return d.Validate(v)
}
