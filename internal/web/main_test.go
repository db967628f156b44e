package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/handlertest"
)

func testConfig() *config.Config {
	return &config.Config{
		Title: "test",
		Webserver: config.Webserver{
			Port:          8080,
			URL:           "http://localhost:8080",
			BodyLimit:     1 << 20,
			CheckAliveURI: "/checkalive",
			CORSOrigins:   []string{"http://localhost:3000"},
		},
		RateLimit: config.RateLimit{Max: 2, Expiration: time.Minute},
	}
}

func newService(t *testing.T) *Service {
	t.Helper()

	env := handlertest.New(t)
	env.Deps.Config = testConfig()

	s, err := New(env.Deps.Config, env.Deps)
	require.NoError(t, err)

	return s
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestCheckAlive(t *testing.T) {
	s := newService(t)

	status, body := do(t, s.App, httptest.NewRequest(http.MethodGet, "/checkalive", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)
	assert.True(t, s.Alive())

	s.alive.Store(false)

	status, _ = do(t, s.App, httptest.NewRequest(http.MethodGet, "/checkalive", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestRoutesRegistered(t *testing.T) {
	s := newService(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/platform-settings", http.StatusOK},
		{http.MethodGet, "/api/settings/panels", http.StatusOK},
		{http.MethodGet, "/api/cms/published", http.StatusOK},
		{http.MethodGet, "/api/payments", http.StatusOK},
		{http.MethodGet, "/api/brands", http.StatusOK},
		{http.MethodGet, "/api/influencers", http.StatusOK},
		{http.MethodGet, "/api/campaigns", http.StatusOK},
		{http.MethodGet, "/api/approval-chains", http.StatusOK},
		{http.MethodGet, "/api/webhooks", http.StatusOK},
		{http.MethodGet, "/api/ip-whitelist", http.StatusOK},
		{http.MethodGet, "/api/rbac", http.StatusOK},
		{http.MethodGet, "/api/announcements", http.StatusOK},
		{http.MethodGet, "/api/contact-submissions", http.StatusOK},
		{http.MethodGet, "/api/newsletter", http.StatusOK},
		{http.MethodGet, "/api/profile", http.StatusOK},
		{http.MethodGet, "/api/nothing-here", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, body := do(t, s.App, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, status, body)
		})
	}
}

func TestMetrics(t *testing.T) {
	s := newService(t)

	status, _ := do(t, s.App, httptest.NewRequest(http.MethodGet, "/api/brands", nil))
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, s.App, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `route="/api/brands"`)
}

func TestPublicRateLimit(t *testing.T) {
	s := newService(t)

	subscribe := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(`{"email":"ana@example.com"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		status, _ := do(t, s.App, req)

		return status
	}

	assert.Equal(t, http.StatusCreated, subscribe())
	assert.Equal(t, http.StatusOK, subscribe())
	assert.Equal(t, http.StatusTooManyRequests, subscribe())
}

func TestCORS(t *testing.T) {
	s := newService(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/brands", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodGet)

	resp, err := s.App.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
