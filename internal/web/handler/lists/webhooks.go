package lists

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/crud"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
	"github.com/AgencyAdmin/AgencyAdmin/internal/webhook"
)

// TestResult reports the outcome of a test delivery.
type TestResult struct {
	Delivered bool   `json:"delivered"`
	Status    int    `json:"status"`
	Error     string `json:"error,omitempty"`
}

// prepareWebhook keeps the stored secret on replace and generates one when none is set.
func prepareWebhook(_ fiber.Ctx, v *models.Webhook, existing *models.Webhook) error {
	if v.Secret != "" {
		return nil
	}

	if existing != nil && existing.Secret != "" {
		v.Secret = existing.Secret
		return nil
	}

	secret, err := webhook.GenerateSecret()
	if err != nil {
		return err
	}

	v.Secret = secret

	return nil
}

// TestWebhook sends a test delivery to one webhook and reports the receiver status.
func (s *Service) TestWebhook(c fiber.Ctx) error {
	id, err := handler.ID(c)
	if err != nil {
		return err
	}

	hook, err := crud.Get[models.Webhook](s.deps.DB, id)
	if err != nil {
		return handler.FromDomain(err)
	}

	e := events.Event{
		Name:       events.WebhookTest,
		OccurredAt: time.Now().UTC(),
		Payload:    fiber.Map{"webhookId": hook.ID},
	}

	status, err := s.deps.Webhooks.Send(c.Context(), *hook, e)

	res := TestResult{Delivered: err == nil, Status: status}
	if err != nil {
		res.Error = err.Error()
		log.Warn().Err(err).Uint64("webhook", hook.ID).Msg("webhook test delivery failed")
	}

	return c.JSON(res)
}
