package settings_controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settings_cache "github.com/Technizer/ModeFilter-Pro/cache"
	"github.com/Technizer/ModeFilter-Pro/models"
)

type fakeSettingsStore struct {
	settings models.StoreSettings
}

func (f *fakeSettingsStore) Settings(ctx context.Context) (models.StoreSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsStore) UpdateSettings(ctx context.Context, req models.UpdateSettingsRequest) (models.StoreSettings, error) {
	if req.GlobalMode != nil {
		f.settings.GlobalMode = *req.GlobalMode
	}
	if req.HidePrices != nil {
		f.settings.HidePrices = *req.HidePrices
	}
	if req.ButtonLabel != nil {
		f.settings.ButtonLabel = *req.ButtonLabel
	}
	return f.settings, nil
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin/settings", h.GetSettings)
	router.PUT("/admin/settings", h.UpdateSettings)
	return router
}

func TestGetSettings(t *testing.T) {
	f := &fakeSettingsStore{settings: models.DefaultSettings()}
	router := newRouter(NewHandler(f))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.StoreSettings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.GlobalModeSell, envelope.Data.GlobalMode)
	assert.True(t, envelope.Data.HidePrices)
}

func TestUpdateSettingsPartialAndCacheInvalidation(t *testing.T) {
	f := &fakeSettingsStore{settings: models.DefaultSettings()}
	router := newRouter(NewHandler(f))

	// Prime the storefront cache with the old mode.
	settings_cache.Set(f.settings)

	body, _ := json.Marshal(map[string]any{"global_mode": models.GlobalModeCatalog})
	req := httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, models.GlobalModeCatalog, f.settings.GlobalMode)
	// Unchanged fields keep their values.
	assert.Equal(t, "Enquire", f.settings.ButtonLabel)

	// The storefront cache no longer serves the stale mode.
	_, ok := settings_cache.Get()
	assert.False(t, ok)
}

func TestUpdateSettingsRejectsBadMode(t *testing.T) {
	f := &fakeSettingsStore{settings: models.DefaultSettings()}
	router := newRouter(NewHandler(f))

	body, _ := json.Marshal(map[string]any{"global_mode": "clearance"})
	req := httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.GlobalModeSell, f.settings.GlobalMode)
}
