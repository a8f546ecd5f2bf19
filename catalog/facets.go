package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Technizer/ModeFilter-Pro/models"
)

// Facet selection modes from the embed directive.
const (
	FacetsManual = "manual"
	FacetsAuto   = "auto"
)

// DetectionSample bounds the price/rating availability scan: the first 50
// pool entries are sampled instead of scanning the whole pool. A facet this
// misses on an unlucky pool is suppressed, never an error.
const DetectionSample = 50

// SampleEntry carries the price/rating fields of one sampled pool entry.
type SampleEntry struct {
	Price         *float64
	RatingAverage float64
	RatingCount   int
}

// AxisTerms maps each classification axis to the terms intersecting the
// current pool, with pool-scoped counts.
type AxisTerms map[string][]models.TermCount

// ChipOptions controls taxonomy chip list shaping.
type ChipOptions struct {
	Limit      int
	OrderBy    string // count|name
	OrderDir   string // ASC|DESC
	ShowMore   bool
	WithCounts bool
	Exclude    []uuid.UUID
}

// DetectFacets reports which facet ids have non-empty membership for the
// pool. Taxonomy facets need at least one non-excluded term with a non-zero
// count; price and rating are judged from the bounded sample.
func DetectFacets(terms AxisTerms, excludes map[string][]uuid.UUID, sample []SampleEntry) []string {
	var available []string

	axisFacet := map[string]string{
		models.AxisCategory: models.FacetCategories,
		models.AxisTag:      models.FacetTags,
		models.AxisBrand:    models.FacetBrands,
	}

	for _, axis := range models.Axes() {
		if len(dropExcluded(terms[axis], excludes[axis])) > 0 {
			available = append(available, axisFacet[axis])
		}
	}

	if len(sample) > DetectionSample {
		sample = sample[:DetectionSample]
	}

	hasPrice := false
	hasRating := false
	for _, s := range sample {
		if s.Price != nil {
			hasPrice = true
		}
		if s.RatingCount > 0 || s.RatingAverage > 0 {
			hasRating = true
		}
		if hasPrice && hasRating {
			break
		}
	}
	if hasPrice {
		available = append(available, models.FacetPrice)
	}
	if hasRating {
		available = append(available, models.FacetRating)
	}

	return available
}

// SelectFacets decides which facets render. Manual mode trusts the caller's
// list as-is. Auto mode with no explicit list renders whatever was
// detected; auto with an explicit list intersects it with detection, so
// detection only ever suppresses, never adds.
func SelectFacets(mode string, requested, available []string) []string {
	if mode != FacetsAuto {
		return requested
	}
	if len(requested) == 0 {
		return available
	}

	out := make([]string, 0, len(requested))
	for _, id := range requested {
		if hasFacet(available, id) {
			out = append(out, id)
		}
	}
	return out
}

// BuildBlocks assembles the chip blocks for the facets to render. Category
// chips honor the configured ordering and carry counts; tag and brand chips
// order by name ascending without counts, favoring scanability.
func BuildBlocks(facets []string, terms AxisTerms, excludes map[string][]uuid.UUID, opts ChipOptions) []models.FacetBlock {
	var blocks []models.FacetBlock

	for _, fid := range facets {
		switch fid {
		case models.FacetCategories:
			o := opts
			o.WithCounts = true
			o.Exclude = excludes[models.AxisCategory]
			if block, ok := buildTaxonomyBlock(fid, "Categories", "category", terms[models.AxisCategory], o); ok {
				blocks = append(blocks, block)
			}
		case models.FacetTags:
			o := opts
			o.OrderBy = "name"
			o.OrderDir = "ASC"
			o.WithCounts = false
			o.Exclude = excludes[models.AxisTag]
			if block, ok := buildTaxonomyBlock(fid, "Tags", "tag", terms[models.AxisTag], o); ok {
				blocks = append(blocks, block)
			}
		case models.FacetBrands:
			o := opts
			o.OrderBy = "name"
			o.OrderDir = "ASC"
			o.WithCounts = false
			o.Exclude = excludes[models.AxisBrand]
			if block, ok := buildTaxonomyBlock(fid, "Brands", "brand", terms[models.AxisBrand], o); ok {
				blocks = append(blocks, block)
			}
		case models.FacetPrice:
			blocks = append(blocks, PriceBlock())
		case models.FacetRating:
			blocks = append(blocks, RatingBlock())
		}
	}

	return blocks
}

// buildTaxonomyBlock shapes one axis into a chip block: exclusions removed,
// terms ordered, the synthetic "All" chip prepended, and either overflow
// marking (show-more enabled) or a hard truncation at the limit.
func buildTaxonomyBlock(id, label, filterKey string, terms []models.TermCount, opts ChipOptions) (models.FacetBlock, bool) {
	terms = dropExcluded(terms, opts.Exclude)
	if len(terms) == 0 {
		return models.FacetBlock{}, false
	}

	orderTerms(terms, opts.OrderBy, opts.OrderDir)

	limit := opts.Limit
	if limit < 1 {
		limit = 1
	}

	hasMore := opts.ShowMore && len(terms) > limit
	if !opts.ShowMore && len(terms) > limit {
		terms = terms[:limit]
	}

	chips := make([]models.Chip, 0, len(terms)+1)
	chips = append(chips, models.Chip{Value: "", Label: "All", Active: true})

	for idx, t := range terms {
		chipLabel := t.Name
		if opts.WithCounts {
			chipLabel = fmt.Sprintf("%s (%d)", t.Name, t.Count)
		}
		chips = append(chips, models.Chip{
			Value:  t.ID.String(),
			Label:  chipLabel,
			Hidden: opts.ShowMore && idx >= limit,
		})
	}

	return models.FacetBlock{
		ID:        id,
		Label:     label,
		FilterKey: filterKey,
		Chips:     chips,
		HasMore:   hasMore,
	}, true
}

// PriceBlock is the fixed price chip ladder. Values are "min|max" pairs the
// client feeds back as price_min/price_max on the next fetch; no live
// buckets are computed.
func PriceBlock() models.FacetBlock {
	return models.FacetBlock{
		ID:        models.FacetPrice,
		Label:     "Price",
		FilterKey: "price",
		Chips: []models.Chip{
			{Value: "", Label: "All", Active: true},
			{Value: "0|50", Label: "Under 50"},
			{Value: "50|100", Label: "50–100"},
			{Value: "100|200", Label: "100–200"},
			{Value: "200|", Label: "200+"},
		},
	}
}

// RatingBlock is the fixed minimum-rating chip ladder.
func RatingBlock() models.FacetBlock {
	return models.FacetBlock{
		ID:        models.FacetRating,
		Label:     "Rating",
		FilterKey: "rating",
		Chips: []models.Chip{
			{Value: "", Label: "All", Active: true},
			{Value: "5", Label: "★★★★★"},
			{Value: "4", Label: "★★★★☆ & up"},
			{Value: "3", Label: "★★★☆☆ & up"},
			{Value: "2", Label: "★★☆☆☆ & up"},
			{Value: "1", Label: "★☆☆☆☆ & up"},
		},
	}
}

func dropExcluded(terms []models.TermCount, exclude []uuid.UUID) []models.TermCount {
	if len(terms) == 0 {
		return nil
	}

	excluded := make(map[uuid.UUID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	out := make([]models.TermCount, 0, len(terms))
	for _, t := range terms {
		if t.Count > 0 && !excluded[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func orderTerms(terms []models.TermCount, orderBy, orderDir string) {
	desc := strings.EqualFold(orderDir, "DESC")

	sort.SliceStable(terms, func(i, j int) bool {
		var less bool
		if orderBy == "name" {
			less = strings.ToLower(terms[i].Name) < strings.ToLower(terms[j].Name)
		} else {
			if terms[i].Count == terms[j].Count {
				less = strings.ToLower(terms[i].Name) < strings.ToLower(terms[j].Name)
				if desc {
					// ties stay alphabetical even in descending count order
					return less
				}
			} else {
				less = terms[i].Count < terms[j].Count
			}
		}
		if desc {
			return !less
		}
		return less
	})
}
