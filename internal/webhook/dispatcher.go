// Package webhook delivers signed event notifications to the configured webhooks.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
)

// AnyEvent subscribes a webhook to every event.
const AnyEvent = "*"

// Defaults applied to zero config values.
const (
	DefaultWorkers   = 2
	DefaultQueueSize = 256
	DefaultTimeout   = 10 * time.Second
	DefaultRate      = 10
)

var (
	// ErrQueueFull is returned when a delivery could not be queued.
	ErrQueueFull = errors.New("webhook queue is full")

	// ErrStopped is returned when the dispatcher no longer accepts deliveries.
	ErrStopped = errors.New("webhook dispatcher stopped")

	// ErrUnexpectedStatus is returned when the receiver answers with a non 2xx status.
	ErrUnexpectedStatus = errors.New("unexpected webhook response status")
)

type job struct {
	hook  models.Webhook
	event events.Event
}

// Dispatcher queues deliveries and posts them from a fixed number of workers,
// throttled by one shared rate limiter.
type Dispatcher struct {
	db      *gorm.DB
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	workers int

	mu      sync.RWMutex
	queue   chan job
	stopped bool
	wg      sync.WaitGroup
}

// New creates a dispatcher. Call Start to launch the workers.
func New(db *gorm.DB, cfg config.Webhook, client *http.Client) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRate
	}

	if client == nil {
		client = &http.Client{}
	}

	return &Dispatcher{
		db:      db,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Workers),
		timeout: cfg.Timeout,
		workers: cfg.Workers,
		queue:   make(chan job, cfg.QueueSize),
	}
}

// Start launches the workers.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)

		go d.work()
	}
}

// Stop stops accepting deliveries and waits until the queued ones are sent or ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})

	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "webhook drain")
	}
}

// Publish implements events.Sink: it queues a delivery for every active webhook subscribed to the event.
func (d *Dispatcher) Publish(ctx context.Context, e events.Event) error {
	var hooks []models.Webhook

	err := d.db.WithContext(ctx).
		Where("active = ? AND event IN ?", true, []string{e.Name, AnyEvent}).
		Order("id").
		Find(&hooks).Error
	if err != nil {
		return errors.Wrap(err, "load webhooks")
	}

	for _, h := range hooks {
		if err := d.enqueue(job{hook: h, event: e}); err != nil {
			deliveryCounter().WithLabelValues(outcomeDropped).Inc()
			log.Warn().Err(err).Uint64("webhook", h.ID).Str("event", e.Name).Msg("webhook delivery dropped")
		}
	}

	return nil
}

func (d *Dispatcher) enqueue(j job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for j := range d.queue {
		if err := d.limiter.Wait(context.Background()); err != nil {
			log.Error().Err(err).Msg("webhook rate limiter")
			continue
		}

		status, err := d.Send(context.Background(), j.hook, j.event)
		if err != nil {
			log.Warn().Err(err).Uint64("webhook", j.hook.ID).Str("url", j.hook.URL).
				Str("event", j.event.Name).Int("status", status).Msg("webhook delivery failed")

			continue
		}

		log.Debug().Uint64("webhook", j.hook.ID).Str("event", j.event.Name).Int("status", status).
			Msg("webhook delivered")
	}
}

// Send posts one signed delivery synchronously and returns the receiver status code.
func (d *Dispatcher) Send(ctx context.Context, hook models.Webhook, e events.Event) (int, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return 0, errors.Wrap(err, "marshal webhook body")
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hook.URL, bytes.NewReader(body))
	if err != nil {
		deliveryCounter().WithLabelValues(outcomeFailed).Inc()
		return 0, errors.Wrap(err, "build webhook request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "agency-admin-webhook/1")
	req.Header.Set(HeaderEvent, e.Name)
	req.Header.Set(HeaderDelivery, uuid.NewString())
	req.Header.Set(HeaderSignature, Sign(hook.Secret, body))

	resp, err := d.client.Do(req)
	if err != nil {
		deliveryCounter().WithLabelValues(outcomeFailed).Inc()
		return 0, errors.Wrap(err, "post webhook")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		deliveryCounter().WithLabelValues(outcomeFailed).Inc()
		return resp.StatusCode, errors.Wrap(ErrUnexpectedStatus, fmt.Sprintf("status %d", resp.StatusCode))
	}

	deliveryCounter().WithLabelValues(outcomeDelivered).Inc()

	return resp.StatusCode, nil
}
