package brands_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/brands"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/handlertest"
)

func TestBrandCRUD(t *testing.T) {
	env := handlertest.New(t, &brands.Service{})

	status, body := env.Request(t, http.MethodPost, brands.Path, map[string]any{
		"name":         "Acme",
		"website":      "https://acme.example.com",
		"contactEmail": "ops@acme.example.com",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	b := handlertest.Decode[models.Brand](t, body)
	itemPath := fmt.Sprintf("%s/%d", brands.Path, b.ID)

	status, _ = env.Request(t, http.MethodPost, brands.Path, map[string]any{"name": "Acme"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.Request(t, http.MethodPost, brands.Path, map[string]any{"name": "Bad", "contactEmail": "nope"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.Request(t, http.MethodPut, itemPath, map[string]any{"name": "Acme Ltd", "industry": "Retail"})
	require.Equal(t, http.StatusOK, status, string(body))

	updated := handlertest.Decode[models.Brand](t, body)
	assert.Equal(t, "Acme Ltd", updated.Name)
	assert.Equal(t, "Retail", updated.Industry)
	assert.Empty(t, updated.Website, "replace clears omitted fields")

	status, body = env.Request(t, http.MethodGet, brands.Path, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), handlertest.Decode[handler.PageResponse[models.Brand]](t, body).Total)

	status, _ = env.Request(t, http.MethodPut, brands.Path+"/999", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.Request(t, http.MethodDelete, itemPath, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.Request(t, http.MethodGet, itemPath, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteBrandInUse(t *testing.T) {
	env := handlertest.New(t, &brands.Service{})

	b := models.Brand{Name: "Acme"}
	require.NoError(t, env.DB.Create(&b).Error)
	require.NoError(t, env.DB.Create(&models.Campaign{
		Name: "Launch", BrandID: b.ID, Platform: "instagram", ContentType: "reel",
		StartDate: time.Now(), EndDate: time.Now(), Status: models.CampaignDraft,
	}).Error)

	status, _ := env.Request(t, http.MethodDelete, fmt.Sprintf("%s/%d", brands.Path, b.ID), nil)
	assert.Equal(t, http.StatusConflict, status)
}
