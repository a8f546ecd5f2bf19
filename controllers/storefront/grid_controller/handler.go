package grid_controller

import (
	"context"

	"github.com/google/uuid"

	settings_cache "github.com/Technizer/ModeFilter-Pro/cache"
	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
	"github.com/Technizer/ModeFilter-Pro/services"
)

// EntryStore is the slice of the store adapter the grid handlers need.
// Narrow on purpose so tests can feed a fake.
type EntryStore interface {
	CandidateIDs(ctx context.Context, sc catalog.Scope) ([]uuid.UUID, error)
	ModeInputs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.ModeInput, error)
	TermDefaults(ctx context.Context) (map[uuid.UUID]string, error)
	Sample(ctx context.Context, ids []uuid.UUID) ([]catalog.SampleEntry, error)
	EntriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Entry, error)
	TermsForEntries(ctx context.Context, taxonomy string, entryIDs []uuid.UUID) ([]models.TermCount, error)
	ResolveTermRefs(ctx context.Context, taxonomy string, refs []string) ([]uuid.UUID, error)
	Settings(ctx context.Context) (models.StoreSettings, error)
}

// Handler owns the storefront grid endpoints.
type Handler struct {
	Store    EntryStore
	Renderer *services.Renderer
	MaxPool  int
}

func NewHandler(store EntryStore, renderer *services.Renderer, maxPool int) *Handler {
	return &Handler{Store: store, Renderer: renderer, MaxPool: maxPool}
}

// settings reads store settings through the TTL cache.
func (h *Handler) settings(ctx context.Context) (models.StoreSettings, error) {
	if cached, ok := settings_cache.Get(); ok {
		return cached, nil
	}

	settings, err := h.Store.Settings(ctx)
	if err != nil {
		return models.StoreSettings{}, err
	}
	settings_cache.Set(settings)
	return settings, nil
}
