package grid_controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settings_cache "github.com/Technizer/ModeFilter-Pro/cache"
	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
	"github.com/Technizer/ModeFilter-Pro/services"
	"github.com/Technizer/ModeFilter-Pro/utils"
)

func renderShell(t *testing.T, h *Handler, attrs *models.WidgetAttrs) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/store/grid/shell", h.RenderShell)

	target := "/store/grid/shell"
	if attrs != nil {
		raw, err := json.Marshal(attrs)
		require.NoError(t, err)
		target += "?attrs=" + url.QueryEscape(string(raw))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decodeShell(t *testing.T, w *httptest.ResponseRecorder) models.ShellPayload {
	t.Helper()
	var envelope struct {
		Data models.ShellPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestRenderShellMintsValidWidgetToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	settings_cache.Invalidate()

	f := newTestStore(6, 2)
	h := NewHandler(f, services.NewRenderer(), 1000)

	w := renderShell(t, h, nil)
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeShell(t, w)
	require.NotEmpty(t, payload.Token)

	claims, err := utils.ValidateToken(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.ScopeWidget, claims.Scope)

	assert.Contains(t, payload.HTML, "mfp-widget")
	assert.Contains(t, payload.HTML, payload.Token)
}

func TestRenderShellNormalizesAttrs(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	settings_cache.Invalidate()

	f := newTestStore(3, 0)
	h := NewHandler(f, services.NewRenderer(), 1000)

	w := renderShell(t, h, &models.WidgetAttrs{PerPage: 9999, Columns: -2, Pagination: "carousel"})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeShell(t, w)
	assert.Equal(t, maxPerPage, payload.Attrs.PerPage)
	assert.Equal(t, 1, payload.Attrs.Columns)
	assert.Equal(t, models.PaginationLoadMore, payload.Attrs.Pagination)
}

func TestRenderShellMalformedAttrs(t *testing.T) {
	settings_cache.Invalidate()

	h := NewHandler(newTestStore(0, 0), services.NewRenderer(), 1000)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/store/grid/shell", h.RenderShell)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/store/grid/shell?attrs=%7Bnope", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenderShellBuildsFacetBlocksFromPool(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	settings_cache.Invalidate()

	f := newTestStore(6, 0)
	f.terms[models.AxisCategory] = []models.TermCount{
		{ID: uuid.Must(uuid.NewV7()), Name: "Sofas", Slug: "sofas", Count: 4},
	}
	price := 25.0
	f.sample = []catalog.SampleEntry{{Price: &price}}

	h := NewHandler(f, services.NewRenderer(), 1000)

	attrs := &models.WidgetAttrs{
		FiltersMode: catalog.FacetsAuto,
		Filters:     []string{"categories", "tags", "price", "rating"},
	}
	w := renderShell(t, h, attrs)
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeShell(t, w)
	// Tags have no pool membership and no sampled entry has a rating, so
	// auto mode suppresses both; categories and price survive.
	assert.Contains(t, payload.HTML, `data-facet="categories"`)
	assert.Contains(t, payload.HTML, `data-facet="price"`)
	assert.NotContains(t, payload.HTML, `data-facet="tags"`)
	assert.NotContains(t, payload.HTML, `data-facet="rating"`)

	assert.Contains(t, payload.HTML, "Sofas (4)")
}

func TestRenderShellResolvesIncludeSlugsToIDs(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	settings_cache.Invalidate()

	id := uuid.Must(uuid.NewV7())
	f := newTestStore(2, 0)
	h := NewHandler(f, services.NewRenderer(), 1000)

	// The fake resolver passes id refs through and drops slugs, which is
	// enough to observe that resolution ran before the candidate query.
	attrs := &models.WidgetAttrs{
		Includes: models.AxisIncludes{CatIn: []string{id.String(), "some-slug"}},
	}
	w := renderShell(t, h, attrs)
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeShell(t, w)
	assert.Equal(t, []string{id.String()}, payload.Attrs.Includes.CatIn)
	assert.Equal(t, []uuid.UUID{id}, f.lastScope.Include[models.AxisCategory])
}
