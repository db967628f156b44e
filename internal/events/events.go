// Package events fans domain events out to the configured sinks.
package events

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Event names emitted by the admin API.
const (
	SettingsUpdated       = "settings.updated"
	CMSPublished          = "cms.published"
	PaymentCreated        = "payment.created"
	PaymentStatusChanged  = "payment.status_changed"
	ManualTransactionSave = "manual_transaction.saved"
	CampaignCreated       = "campaign.created"
	InfluencerApproval    = "influencer.approval_changed"
	ContactSubmitted      = "contact.submitted"
	NewsletterSubscribed  = "newsletter.subscribed"
	WebhookTest           = "webhook.test"
)

// Event is one domain event.
type Event struct {
	Name       string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Sink receives published events. Implementations must not block for long.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// Publisher is what handlers depend on.
type Publisher interface {
	Emit(ctx context.Context, name string, payload any)
}

// Bus delivers every event to all sinks. Sink failures are logged, never returned.
type Bus struct {
	sinks []Sink
	now   func() time.Time
}

// NewBus creates a bus with the given sinks, nil sinks are skipped.
func NewBus(sinks ...Sink) *Bus {
	b := &Bus{now: time.Now}

	for _, s := range sinks {
		if s != nil {
			b.sinks = append(b.sinks, s)
		}
	}

	return b
}

// Emit builds the event and hands it to every sink.
func (b *Bus) Emit(ctx context.Context, name string, payload any) {
	if b == nil {
		return
	}

	e := Event{Name: name, OccurredAt: b.now().UTC(), Payload: payload}

	for _, s := range b.sinks {
		if err := s.Publish(ctx, e); err != nil {
			log.Warn().Err(err).Str("event", name).Msgf("failed to publish event to %T", s)
		}
	}
}

// Discard drops every event, used when no sink is configured.
type Discard struct{}

// Emit implements Publisher.
func (Discard) Emit(context.Context, string, any) {}
