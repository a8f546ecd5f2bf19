package models

// Canonical facet identifiers.
const (
	FacetCategories = "categories"
	FacetTags       = "tags"
	FacetBrands     = "brands"
	FacetPrice      = "price"
	FacetRating     = "rating"
)

// Chip is one selectable value inside a facet block. The "All" chip has an
// empty value and is default-active. Hidden marks overflow chips revealed by
// the show-more control.
type Chip struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Hidden bool   `json:"hidden"`
}

// FacetBlock is one request-scoped chip list. Blocks are rebuilt from the
// pool on every shell render and never cached: counts go stale the moment
// mode, stock or membership changes.
type FacetBlock struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	FilterKey string `json:"filter_key"`
	Chips     []Chip `json:"chips"`
	HasMore   bool   `json:"has_more"`
}
