package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
)

// Trigger identifies what caused a page request. Viewport triggers are
// dropped while a request is in flight; explicit triggers supersede it.
type Trigger int

const (
	TriggerClick Trigger = iota
	TriggerViewport
	TriggerProgrammatic
)

// Fetcher loads one grid page. The HTTP implementation talks to the fetch
// endpoint; tests substitute their own.
type Fetcher interface {
	FetchPage(ctx context.Context, req models.FetchRequest) (models.GridPayload, error)
}

// ViewportNotifier fires the callback whenever the grid sentinel becomes
// visible. A nil notifier means the environment cannot observe the
// viewport and infinite pagination degrades to load_more.
type ViewportNotifier interface {
	Observe(fn func())
}

// Snapshot is the grid state handed to the update callback after each
// completed request.
type Snapshot struct {
	HTML     string
	IDs      []string
	Page     int
	MaxPages int
	Total    int
	Appended bool
	Err      error
}

// Grid drives the widget lifecycle: facet toggles, sort changes and page
// loads. At most one request is in flight; a superseding request cancels
// the previous one and any late response from it is discarded.
type Grid struct {
	mu sync.Mutex

	fetcher  Fetcher
	attrs    models.WidgetAttrs
	strategy string

	selection *catalog.Selection
	sort      string

	page     int
	maxPages int
	total    int

	loading bool
	seq     uint64
	cancel  context.CancelFunc

	onUpdate func(Snapshot)
}

// NewGrid builds a grid client from the attrs a rendered shell echoed
// back. The infinite strategy needs a viewport notifier; without one it
// degrades to load_more rather than silently never loading.
func NewGrid(fetcher Fetcher, attrs models.WidgetAttrs, notifier ViewportNotifier, onUpdate func(Snapshot)) *Grid {
	g := &Grid{
		fetcher:   fetcher,
		attrs:     attrs,
		strategy:  attrs.Pagination,
		selection: catalog.NewSelection(),
		sort:      attrs.Sort,
		page:      1,
		maxPages:  1,
		onUpdate:  onUpdate,
	}

	if g.strategy == models.PaginationInfinite {
		if notifier == nil {
			g.strategy = models.PaginationLoadMore
		} else {
			notifier.Observe(func() { g.LoadNext(TriggerViewport) })
		}
	}

	return g
}

// Strategy reports the effective pagination strategy after degradation.
func (g *Grid) Strategy() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.strategy
}

// Loading reports whether a request is in flight.
func (g *Grid) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

// Toggle flips one chip and refreshes from page one. The current page
// content is replaced when the response lands.
func (g *Grid) Toggle(facet, value string) {
	g.mu.Lock()
	g.selection.Toggle(facet, value)
	g.mu.Unlock()

	g.Refresh(TriggerClick)
}

// SetSort changes the sort key and refreshes from page one.
func (g *Grid) SetSort(sort string) {
	g.mu.Lock()
	g.sort = sort
	g.mu.Unlock()

	g.Refresh(TriggerProgrammatic)
}

// Refresh requests page one of the current scope, superseding any request
// in flight.
func (g *Grid) Refresh(trigger Trigger) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.start(1, false)
}

// LoadNext requests the page after the current one, appending on arrival.
// It is a no-op while loading (double clicks, repeated sentinel fires) and
// past the last page.
func (g *Grid) LoadNext(trigger Trigger) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.loading {
		return
	}
	if g.page >= g.maxPages {
		return
	}
	g.start(g.page+1, true)
}

// LoadPage jumps straight to a page, for the numbers strategy.
func (g *Grid) LoadPage(page int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.start(page, false)
}

// start kicks off a request. Caller holds the mutex. A previous in-flight
// request is cancelled and its sequence invalidated, so whichever of its
// response or cancellation error arrives later is discarded.
func (g *Grid) start(page int, appending bool) {
	if g.cancel != nil {
		g.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.loading = true
	g.seq++
	seq := g.seq

	req := g.buildRequest(page)

	go func() {
		payload, err := g.fetcher.FetchPage(ctx, req)

		g.mu.Lock()
		if g.seq != seq {
			g.mu.Unlock()
			return
		}
		g.loading = false
		g.cancel = nil

		var snap Snapshot
		if err != nil {
			// No automatic retry. The state stays where it was and the
			// caller decides whether to offer one.
			snap = Snapshot{Page: g.page, MaxPages: g.maxPages, Total: g.total, Err: err}
		} else {
			g.page = payload.Page
			g.maxPages = payload.MaxPages
			g.total = payload.Total
			snap = Snapshot{
				HTML:     payload.HTML,
				IDs:      payload.IDs,
				Page:     payload.Page,
				MaxPages: payload.MaxPages,
				Total:    payload.Total,
				Appended: appending,
			}
		}
		onUpdate := g.onUpdate
		g.mu.Unlock()

		if onUpdate != nil {
			onUpdate(snap)
		}
	}()
}

// buildRequest flattens the selection into the fetch body. Caller holds
// the mutex.
func (g *Grid) buildRequest(page int) models.FetchRequest {
	req := models.FetchRequest{
		Attrs:    g.attrs,
		Page:     page,
		Sort:     g.sort,
		CatIDs:   g.selection.Values(models.FacetCategories),
		TagIDs:   g.selection.Values(models.FacetTags),
		BrandIDs: g.selection.Values(models.FacetBrands),
	}

	if price := g.selection.Value(models.FacetPrice); price != "" {
		req.PriceMin, req.PriceMax = splitPriceRange(price)
	}
	if rating := g.selection.Value(models.FacetRating); rating != "" {
		fmt.Sscanf(rating, "%d", &req.RatingMin)
	}

	return req
}

// splitPriceRange parses a "min|max" chip value; either side may be empty.
func splitPriceRange(v string) (min, max string) {
	for i := 0; i < len(v); i++ {
		if v[i] == '|' {
			return v[:i], v[i+1:]
		}
	}
	return v, ""
}

// HTTPFetcher is the production Fetcher: it posts the request to the grid
// endpoint with the widget token from the shell.
type HTTPFetcher struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewHTTPFetcher(baseURL, token string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *HTTPFetcher) FetchPage(ctx context.Context, req models.FetchRequest) (models.GridPayload, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.GridPayload{}, fmt.Errorf("marshal fetch request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+"/store/grid", bytes.NewReader(body))
	if err != nil {
		return models.GridPayload{}, fmt.Errorf("build fetch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Widget-Token", f.Token)

	resp, err := f.HTTPClient.Do(httpReq)
	if err != nil {
		return models.GridPayload{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.GridPayload{}, fmt.Errorf("read fetch response: %w", err)
	}

	var envelope struct {
		Message string             `json:"message"`
		Data    models.GridPayload `json:"data"`
		Error   bool               `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return models.GridPayload{}, fmt.Errorf("decode fetch response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || envelope.Error {
		return models.GridPayload{}, fmt.Errorf("grid fetch failed (%d): %s", resp.StatusCode, envelope.Message)
	}

	return envelope.Data, nil
}
