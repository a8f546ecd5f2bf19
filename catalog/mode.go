package catalog

import (
	"github.com/google/uuid"

	"github.com/Technizer/ModeFilter-Pro/models"
)

// Mode is the resolved sell/catalog status of one entry. It is derived,
// never stored: every entry resolves to exactly one mode for a given
// snapshot of entry meta, term metas and global settings.
type Mode string

const (
	ModeSellable    Mode = "sellable"
	ModeCatalogOnly Mode = "catalog_only"
)

// Override values as written by the admin subsystem into attribute stores.
const (
	OverrideSell    = "sell"
	OverrideCatalog = "catalog"
)

// Attribute-store keys for the mode override hierarchy. The store adapter
// is the only code that touches these; the engine sees typed values.
const (
	EntryOverrideKey = "mode_override"
	TermDefaultKey   = "mode_default"
)

// ModeInput is everything the resolver needs about one entry: its own
// override (tier 1) and its group memberships per axis in resolution order
// (tier 2). Memberships within an axis are ordered by term id ascending,
// which is stable across calls.
type ModeInput struct {
	Override    string
	Memberships map[string][]uuid.UUID
}

// Resolver computes effective modes for one request. It memoizes results so
// the eligibility pass and card rendering share one computation per entry.
// A Resolver is created at request start and discarded with the request;
// it must never be shared across requests.
type Resolver struct {
	globalMode   string
	inputs       map[uuid.UUID]ModeInput
	termDefaults map[uuid.UUID]string
	memo         map[uuid.UUID]Mode
}

func NewResolver(settings models.StoreSettings, inputs map[uuid.UUID]ModeInput, termDefaults map[uuid.UUID]string) *Resolver {
	return &Resolver{
		globalMode:   settings.GlobalMode,
		inputs:       inputs,
		termDefaults: termDefaults,
		memo:         make(map[uuid.UUID]Mode, len(inputs)),
	}
}

// Resolve returns the effective mode for an entry. Precedence, first match
// wins:
//
//  1. the entry's own override, if valid;
//  2. the first group default found walking axes in fixed order
//     (category, tag, brand), groups within an axis in stable order;
//  3. the global mode, where hybrid behaves like sell.
//
// The chain is total: tier 3 always yields a value, including for entries
// the resolver was never given inputs for.
func (r *Resolver) Resolve(id uuid.UUID) Mode {
	if mode, ok := r.memo[id]; ok {
		return mode
	}

	mode := r.resolve(id)
	r.memo[id] = mode
	return mode
}

func (r *Resolver) resolve(id uuid.UUID) Mode {
	in, ok := r.inputs[id]
	if ok {
		if m, valid := overrideToMode(in.Override); valid {
			return m
		}

		for _, axis := range models.Axes() {
			for _, termID := range in.Memberships[axis] {
				if m, valid := overrideToMode(r.termDefaults[termID]); valid {
					return m
				}
			}
		}
	}

	if r.globalMode == models.GlobalModeCatalog {
		return ModeCatalogOnly
	}
	// sell and hybrid both sell at the final fallback
	return ModeSellable
}

func overrideToMode(raw string) (Mode, bool) {
	switch raw {
	case OverrideSell:
		return ModeSellable, true
	case OverrideCatalog:
		return ModeCatalogOnly, true
	default:
		return "", false
	}
}
