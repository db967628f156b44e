package panels_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/platform"
	"github.com/AgencyAdmin/AgencyAdmin/internal/panel"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/handlertest"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/panels"
)

func valueOf(d panels.Detail, key string) any {
	for _, c := range d.Controls {
		if c.Key == key {
			return c.Value
		}
	}

	return nil
}

func TestList(t *testing.T) {
	env := handlertest.New(t, &panels.Service{})

	status, body := env.Request(t, http.MethodGet, panels.Path, nil)
	require.Equal(t, http.StatusOK, status)

	got := handlertest.Decode[[]panels.Summary](t, body)
	require.Len(t, got, len(panel.All()))
	assert.Equal(t, "general", got[0].ID)
	assert.Positive(t, got[0].Controls)
}

func TestGet(t *testing.T) {
	env := handlertest.New(t, &panels.Service{})

	status, body := env.Request(t, http.MethodGet, panels.Path+"/payments", nil)
	require.Equal(t, http.StatusOK, status)

	got := handlertest.Decode[panels.Detail](t, body)
	assert.Equal(t, "payments", got.ID)
	assert.Equal(t, false, valueOf(got, "payments.autoPayouts"))
	assert.InDelta(t, 7.0, valueOf(got, "payments.payoutDelayDays"), 0)

	status, _ = env.Request(t, http.MethodGet, panels.Path+"/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPatch(t *testing.T) {
	tests := []struct {
		name  string
		panel string
		body  any
		want  int
	}{
		{name: "valid", panel: "payments", body: map[string]any{"payments.autoPayouts": true, "payments.gateway": "stripe"}, want: http.StatusOK},
		{name: "key of another panel", panel: "payments", body: map[string]any{"general.siteName": "x"}, want: http.StatusBadRequest},
		{name: "unknown key", panel: "payments", body: map[string]any{"payments.nope": 1}, want: http.StatusBadRequest},
		{name: "wrong kind", panel: "payments", body: map[string]any{"payments.autoPayouts": "yes"}, want: http.StatusBadRequest},
		{name: "option not allowed", panel: "payments", body: map[string]any{"payments.gateway": "cash"}, want: http.StatusBadRequest},
		{name: "out of range", panel: "payments", body: map[string]any{"payments.advancePercent": 150}, want: http.StatusBadRequest},
		{name: "unknown panel", panel: "nope", body: map[string]any{"x": 1}, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := handlertest.New(t, &panels.Service{})

			status, _ := env.Request(t, http.MethodPatch, panels.Path+"/"+tt.panel, tt.body)
			assert.Equal(t, tt.want, status)

			settings, err := platform.Load(env.DB)
			require.NoError(t, err)

			if tt.want == http.StatusOK {
				assert.Equal(t, true, settings.MasterConfig["payments.autoPayouts"])
				assert.Equal(t, "stripe", settings.MasterConfig["payments.gateway"])
				assert.Equal(t, int64(1), settings.Version)
			} else {
				assert.Zero(t, settings.Version)
			}
		})
	}
}

func TestPatchKeepsOtherKeys(t *testing.T) {
	env := handlertest.New(t, &panels.Service{})

	status, _ := env.Request(t, http.MethodPatch, panels.Path+"/general", map[string]any{"general.siteName": "Reach"})
	require.Equal(t, http.StatusOK, status)

	status, body := env.Request(t, http.MethodPatch, panels.Path+"/branding", map[string]any{"branding.theme": "dark"}, "If-Match", "1")
	require.Equal(t, http.StatusOK, status)

	got := handlertest.Decode[panels.Detail](t, body)
	assert.Equal(t, "dark", valueOf(got, "branding.theme"))
	assert.Equal(t, int64(2), got.Version)

	settings, err := platform.Load(env.DB)
	require.NoError(t, err)
	assert.Equal(t, "Reach", settings.MasterConfig["general.siteName"])

	status, _ = env.Request(t, http.MethodPatch, panels.Path+"/branding", map[string]any{"branding.theme": "light"}, "If-Match", "1")
	assert.Equal(t, http.StatusConflict, status)
}
