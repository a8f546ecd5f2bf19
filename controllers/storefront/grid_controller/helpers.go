package grid_controller

import (
	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
)

// Display parameter bounds. Out-of-range embed values clamp instead of
// erroring so a sloppy embed still renders.
const (
	defaultPerPage = 9
	maxPerPage     = 100

	defaultColumns = 3
	maxColumns     = 6

	defaultTermsLimit = 12
	maxTermsLimit     = 200

	defaultMasonryGap         = 20
	maxMasonryGap             = 200
	defaultJustifiedRowHeight = 280
	minJustifiedRowHeight     = 50
	maxJustifiedRowHeight     = 1200

	defaultExcerptLength = 20
)

// normalizeAttrs clamps and defaults every display parameter of the embed
// directive. Runs on both the shell render and every fetch, so a tampered
// echo can never smuggle out-of-range values past the shell.
func normalizeAttrs(attrs models.WidgetAttrs) models.WidgetAttrs {
	attrs.PerPage = clamp(attrs.PerPage, 1, maxPerPage, defaultPerPage)
	attrs.Columns = clamp(attrs.Columns, 1, maxColumns, defaultColumns)
	attrs.TermsLimit = clamp(attrs.TermsLimit, 1, maxTermsLimit, defaultTermsLimit)
	attrs.ExcerptLength = clamp(attrs.ExcerptLength, 1, 200, defaultExcerptLength)

	switch attrs.GridLayout {
	case models.LayoutMasonry:
		attrs.MasonryGap = clamp(attrs.MasonryGap, 0, maxMasonryGap, defaultMasonryGap)
	case models.LayoutJustified:
		attrs.JustifiedRowHeight = clamp(attrs.JustifiedRowHeight, minJustifiedRowHeight, maxJustifiedRowHeight, defaultJustifiedRowHeight)
	default:
		attrs.GridLayout = models.LayoutGrid
	}

	switch attrs.Pagination {
	case models.PaginationLoadMore, models.PaginationNumbers, models.PaginationInfinite, models.PaginationNone:
	default:
		attrs.Pagination = models.PaginationLoadMore
	}

	if attrs.FiltersMode != catalog.FacetsAuto {
		attrs.FiltersMode = catalog.FacetsManual
	}
	attrs.Filters = catalog.NormalizeFacetIDs(attrs.Filters)

	if attrs.TermsOrderBy != "name" {
		attrs.TermsOrderBy = "count"
	}
	if attrs.TermsOrder != "ASC" && attrs.TermsOrder != "asc" {
		attrs.TermsOrder = "DESC"
	}

	if attrs.FilterPosition != "top" {
		attrs.FilterPosition = "side"
	}

	return attrs
}

// clamp returns fallback for the zero value, otherwise v bounded to
// [min, max].
func clamp(v, min, max, fallback int) int {
	if v == 0 {
		return fallback
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func chipOptions(attrs models.WidgetAttrs) catalog.ChipOptions {
	return catalog.ChipOptions{
		Limit:    attrs.TermsLimit,
		OrderBy:  attrs.TermsOrderBy,
		OrderDir: attrs.TermsOrder,
		ShowMore: attrs.TermsShowMore == "yes",
	}
}
