package grid_controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settings_cache "github.com/Technizer/ModeFilter-Pro/cache"
	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
	"github.com/Technizer/ModeFilter-Pro/services"
	"github.com/Technizer/ModeFilter-Pro/store"
)

// fakeStore satisfies EntryStore from canned data.
type fakeStore struct {
	candidates   []uuid.UUID
	candidateErr error
	inputs       map[uuid.UUID]catalog.ModeInput
	termDefaults map[uuid.UUID]string
	sample       []catalog.SampleEntry
	entries      map[uuid.UUID]models.Entry
	terms        map[string][]models.TermCount
	settings     models.StoreSettings

	lastScope catalog.Scope
}

func (f *fakeStore) CandidateIDs(ctx context.Context, sc catalog.Scope) ([]uuid.UUID, error) {
	f.lastScope = sc
	return f.candidates, f.candidateErr
}

func (f *fakeStore) ModeInputs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.ModeInput, error) {
	out := map[uuid.UUID]catalog.ModeInput{}
	for _, id := range ids {
		if in, ok := f.inputs[id]; ok {
			out[id] = in
		} else {
			out[id] = catalog.ModeInput{}
		}
	}
	return out, nil
}

func (f *fakeStore) TermDefaults(ctx context.Context) (map[uuid.UUID]string, error) {
	return f.termDefaults, nil
}

func (f *fakeStore) Sample(ctx context.Context, ids []uuid.UUID) ([]catalog.SampleEntry, error) {
	return f.sample, nil
}

func (f *fakeStore) EntriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Entry, error) {
	out := make([]models.Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := f.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) TermsForEntries(ctx context.Context, taxonomy string, entryIDs []uuid.UUID) ([]models.TermCount, error) {
	return f.terms[taxonomy], nil
}

func (f *fakeStore) ResolveTermRefs(ctx context.Context, taxonomy string, refs []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if id, err := uuid.Parse(ref); err == nil {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeStore) Settings(ctx context.Context) (models.StoreSettings, error) {
	return f.settings, nil
}

func newTestStore(total, catalogOnly int) *fakeStore {
	f := &fakeStore{
		inputs:   map[uuid.UUID]catalog.ModeInput{},
		entries:  map[uuid.UUID]models.Entry{},
		terms:    map[string][]models.TermCount{},
		settings: models.DefaultSettings(),
	}

	for i := 0; i < total; i++ {
		id := uuid.Must(uuid.NewV7())
		f.candidates = append(f.candidates, id)

		in := catalog.ModeInput{}
		if i < catalogOnly {
			in.Override = catalog.OverrideCatalog
		}
		f.inputs[id] = in

		f.entries[id] = models.Entry{
			ID:          id,
			Name:        fmt.Sprintf("Entry %02d", i),
			Description: "A demo entry.",
			Price:       float64(10 + i),
			StockStatus: models.StockInStock,
			Status:      models.EntryPublished,
		}
	}

	return f
}

func fetchGrid(t *testing.T, h *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/store/grid", h.FetchGrid)

	req := httptest.NewRequest(http.MethodPost, "/store/grid", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodePayload(t *testing.T, w *httptest.ResponseRecorder) models.GridPayload {
	t.Helper()
	var envelope struct {
		Data models.GridPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestFetchGridPaginatesEligibleSet(t *testing.T) {
	settings_cache.Invalidate()

	// 25 candidates, 10 catalog-only: 15 sellable over 2 pages of 9.
	f := newTestStore(25, 10)
	h := NewHandler(f, services.NewRenderer(), 1000)

	w := fetchGrid(t, h, models.FetchRequest{
		Attrs: models.WidgetAttrs{PerPage: 9},
		Page:  2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodePayload(t, w)
	assert.Equal(t, 2, payload.Page)
	assert.Equal(t, 2, payload.MaxPages)
	assert.Equal(t, 15, payload.Total)
	assert.Len(t, payload.IDs, 6)
	assert.Contains(t, payload.HTML, "mfp-card")
}

func TestFetchGridCatalogPool(t *testing.T) {
	settings_cache.Invalidate()

	f := newTestStore(10, 4)
	h := NewHandler(f, services.NewRenderer(), 1000)

	w := fetchGrid(t, h, models.FetchRequest{
		Attrs: models.WidgetAttrs{PerPage: 9, OnlyCatalog: "yes"},
		Page:  1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodePayload(t, w)
	assert.Equal(t, 4, payload.Total)
	assert.Len(t, payload.IDs, 4)
}

func TestFetchGridEmptyResultIsSuccess(t *testing.T) {
	settings_cache.Invalidate()

	f := newTestStore(0, 0)
	h := NewHandler(f, services.NewRenderer(), 1000)

	w := fetchGrid(t, h, models.FetchRequest{Attrs: models.WidgetAttrs{PerPage: 9}, Page: 1})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodePayload(t, w)
	assert.Equal(t, 0, payload.Total)
	assert.Equal(t, 1, payload.Page)
	assert.Equal(t, 1, payload.MaxPages)
	assert.Empty(t, payload.IDs)
}

func TestFetchGridOutOfRangePageClamps(t *testing.T) {
	settings_cache.Invalidate()

	f := newTestStore(5, 0)
	h := NewHandler(f, services.NewRenderer(), 1000)

	w := fetchGrid(t, h, models.FetchRequest{Attrs: models.WidgetAttrs{PerPage: 3}, Page: 40})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodePayload(t, w)
	assert.Equal(t, 2, payload.Page)
	assert.Len(t, payload.IDs, 2)
}

func TestFetchGridMalformedBody(t *testing.T) {
	settings_cache.Invalidate()

	h := NewHandler(newTestStore(0, 0), services.NewRenderer(), 1000)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/store/grid", h.FetchGrid)

	req := httptest.NewRequest(http.MethodPost, "/store/grid", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchGridBackendFailureIsServiceUnavailable(t *testing.T) {
	settings_cache.Invalidate()

	f := newTestStore(3, 0)
	f.candidateErr = store.ErrPoolTooLarge
	h := NewHandler(f, services.NewRenderer(), 10)

	w := fetchGrid(t, h, models.FetchRequest{Attrs: models.WidgetAttrs{PerPage: 9}, Page: 1})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var envelope struct {
		Message string `json:"message"`
		Error   bool   `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Error)
	// The reason stays generic for the storefront.
	assert.Equal(t, "Store backend unavailable", envelope.Message)
}

func TestFetchGridCatalogCardsHidePriceAndSwapButton(t *testing.T) {
	settings_cache.Invalidate()

	f := newTestStore(2, 2)
	f.settings.HidePrices = true
	f.settings.ReplaceButton = true
	f.settings.ButtonLabel = "Enquire"

	h := NewHandler(f, services.NewRenderer(), 1000)

	w := fetchGrid(t, h, models.FetchRequest{
		Attrs: models.WidgetAttrs{PerPage: 9, OnlyCatalog: "yes"},
		Page:  1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodePayload(t, w)
	assert.NotContains(t, payload.HTML, "mfp-card__price")
	assert.NotContains(t, payload.HTML, "Add to cart")
	assert.Contains(t, payload.HTML, "Enquire")
}

func TestFetchGridDisabledFacetSelectionIgnored(t *testing.T) {
	settings_cache.Invalidate()

	f := newTestStore(3, 0)
	h := NewHandler(f, services.NewRenderer(), 1000)

	w := fetchGrid(t, h, models.FetchRequest{
		Attrs:  models.WidgetAttrs{PerPage: 9},
		Page:   1,
		CatIDs: []string{uuid.Must(uuid.NewV7()).String()},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// No facets enabled on the widget, so the selection never reached the
	// candidate query.
	assert.Empty(t, f.lastScope.Select[models.AxisCategory])
}
