package catalog

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Technizer/ModeFilter-Pro/models"
)

// PoolType selects which side of the mode split a request wants.
type PoolType string

const (
	PoolSellable PoolType = "sellable"
	PoolCatalog  PoolType = "catalog"
)

// Sort keys accepted by the storefront. The three stock keys constrain
// stock_status rather than ordering.
const (
	SortNewest     = ""
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRandom     = "random"
	SortInStock    = "in_stock"
	SortPreorder   = "preorder"
	SortOutOfStock = "out_of_stock"
)

var allowedSorts = map[string]bool{
	SortNewest:     true,
	SortPriceAsc:   true,
	SortPriceDesc:  true,
	SortRandom:     true,
	SortInStock:    true,
	SortPreorder:   true,
	SortOutOfStock: true,
}

// Scope is the normalized input for one candidate-pool build: visibility,
// membership and numeric constraints only. Mode never appears here because
// the entry store cannot express it as a predicate.
type Scope struct {
	Pool PoolType

	// BaseCategorySlug pins the sellable pool to one base category.
	// Ignored for catalog-pool requests.
	BaseCategorySlug string

	Include map[string][]uuid.UUID // per axis, from the embed directive
	Exclude map[string][]uuid.UUID // per axis, from the embed directive
	Select  map[string][]uuid.UUID // per axis, from active facet chips

	PriceMin  *float64
	PriceMax  *float64
	RatingMin int

	// StockStatus is set when the sort key is one of the stock pseudo-sorts.
	StockStatus string
	Sort        string

	MaxPool int
}

// NormalizeScope builds a Scope from widget attrs and the client's current
// selections. Selections for facets that are not enabled on the widget are
// dropped, so a tampered request can never widen its own facet surface.
func NormalizeScope(attrs models.WidgetAttrs, req models.FetchRequest, maxPool int) Scope {
	enabled := NormalizeFacetIDs(attrs.Filters)

	pool := PoolSellable
	if attrs.OnlyCatalog == "yes" {
		pool = PoolCatalog
	}

	sc := Scope{
		Pool:    pool,
		Include: map[string][]uuid.UUID{},
		Exclude: map[string][]uuid.UUID{},
		Select:  map[string][]uuid.UUID{},
		MaxPool: maxPool,
	}

	if pool == PoolSellable {
		sc.BaseCategorySlug = strings.TrimSpace(attrs.SellableSet.CatSlug)
	}

	sc.Include[models.AxisCategory] = parseIDList(attrs.Includes.CatIn)
	sc.Include[models.AxisTag] = parseIDList(attrs.Includes.TagIn)
	sc.Include[models.AxisBrand] = parseIDList(attrs.Includes.BrandIn)

	sc.Exclude[models.AxisCategory] = parseIDList(attrs.Excludes.Cat)
	sc.Exclude[models.AxisTag] = parseIDList(attrs.Excludes.Tag)
	sc.Exclude[models.AxisBrand] = parseIDList(attrs.Excludes.Brand)

	if hasFacet(enabled, models.FacetCategories) {
		sc.Select[models.AxisCategory] = parseIDList(req.CatIDs)
	}
	if hasFacet(enabled, models.FacetTags) {
		sc.Select[models.AxisTag] = parseIDList(req.TagIDs)
	}
	if hasFacet(enabled, models.FacetBrands) {
		sc.Select[models.AxisBrand] = parseIDList(req.BrandIDs)
	}

	if hasFacet(enabled, models.FacetPrice) {
		sc.PriceMin = parsePrice(req.PriceMin)
		sc.PriceMax = parsePrice(req.PriceMax)
	}
	if hasFacet(enabled, models.FacetRating) {
		if req.RatingMin >= 1 && req.RatingMin <= 5 {
			sc.RatingMin = req.RatingMin
		}
	}

	sort := req.Sort
	if sort == "" {
		sort = attrs.Sort
	}
	if !allowedSorts[sort] {
		sort = SortNewest
	}
	switch sort {
	case SortInStock:
		sc.StockStatus = models.StockInStock
	case SortPreorder:
		sc.StockStatus = models.StockPreorder
	case SortOutOfStock:
		sc.StockStatus = models.StockOutOfStock
	default:
		sc.Sort = sort
	}

	return sc
}

// NormalizeFacetIDs canonicalizes a raw facet id list: singular aliases
// fold to the canonical ids, unknown entries drop, duplicates collapse.
func NormalizeFacetIDs(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := map[string]bool{}

	for _, item := range raw {
		var id string
		switch strings.ToLower(strings.TrimSpace(item)) {
		case "category", "categories":
			id = models.FacetCategories
		case "tag", "tags":
			id = models.FacetTags
		case "brand", "brands":
			id = models.FacetBrands
		case "price":
			id = models.FacetPrice
		case "rating":
			id = models.FacetRating
		default:
			continue
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}

func hasFacet(enabled []string, id string) bool {
	for _, f := range enabled {
		if f == id {
			return true
		}
	}
	return false
}

func parseIDList(raw []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(raw))
	seen := map[uuid.UUID]bool{}
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil || id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// parsePrice accepts "149", "149.90" or "149,90"; negatives clamp to zero,
// anything unparsable means "no bound".
func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	if num < 0 {
		num = 0
	}
	return &num
}
