// Package handlertest wires handler services against an in-memory database for tests.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/dbtest"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/mail"
	"github.com/AgencyAdmin/AgencyAdmin/internal/media"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
	"github.com/AgencyAdmin/AgencyAdmin/internal/webhook"
)

// Recorder collects emitted events.
type Recorder struct {
	mu     sync.Mutex
	events []events.Event
}

// Emit implements events.Publisher.
func (r *Recorder) Emit(_ context.Context, name string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, events.Event{Name: name, Payload: payload})
}

// Names returns the names of the recorded events in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}

	return out
}

// Env is a fiber app with handler services registered on a fresh database.
type Env struct {
	App    *fiber.App
	Deps   *handler.Deps
	DB     *gorm.DB
	Events *Recorder
}

// New creates the environment and initializes the services.
func New(t *testing.T, services ...handler.Service) *Env {
	t.Helper()

	db := dbtest.Open(t)
	rec := &Recorder{}

	cfg := &config.Config{
		Upload: config.Upload{Dir: t.TempDir(), AvatarSize: 32},
	}

	deps := &handler.Deps{
		Config:    cfg,
		DB:        db,
		Auth:      auth.NewService(db, nil),
		Events:    rec,
		Mail:      mail.New(cfg.Mail),
		Webhooks:  webhook.New(db, cfg.Webhook, nil),
		Media:     media.NewStore(cfg.Upload),
		Validator: validator.New(),
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})

	for _, s := range services {
		require.NoError(t, s.Init(app, deps))
	}

	return &Env{App: app, Deps: deps, DB: db, Events: rec}
}

// Request sends a request and returns the status and body. A string body is sent as is,
// any other non nil body is JSON encoded. headers are key value pairs.
func (e *Env) Request(t *testing.T, method, path string, body any, headers ...string) (int, []byte) {
	t.Helper()

	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	return e.Send(t, req)
}

// Send runs a prepared request through the app.
func (e *Env) Send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := e.App.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

// Decode unmarshals a response body.
func Decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))

	return v
}
