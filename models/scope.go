package models

// Pagination display strategies. All three consume the same backend
// contract; infinite degrades to load_more when no viewport notifier exists.
const (
	PaginationLoadMore = "load_more"
	PaginationNumbers  = "numbers"
	PaginationInfinite = "infinite"
	PaginationNone     = "none"
)

// Grid layout modes.
const (
	LayoutGrid      = "grid"
	LayoutMasonry   = "masonry"
	LayoutJustified = "justified"
)

// AxisIncludes carries per-axis include scopes, resolved to term ids when
// the shell is rendered so the fetch endpoint never re-resolves slugs.
type AxisIncludes struct {
	CatIn   []string `json:"cat_in"`
	TagIn   []string `json:"tag_in"`
	BrandIn []string `json:"brand_in"`
}

// AxisExcludes carries per-axis excluded term ids. Excluded groups never
// appear as chips and never constrain the candidate pool.
type AxisExcludes struct {
	Cat   []string `json:"cat"`
	Tag   []string `json:"tag"`
	Brand []string `json:"brand"`
}

// SellableSet optionally pins the sellable pool to one base category.
type SellableSet struct {
	CatSlug string `json:"cat_slug"`
}

// WidgetAttrs is the embed directive contract: the full request scope plus
// display parameters, serialized into the shell and echoed back verbatim on
// every fetch.
type WidgetAttrs struct {
	Columns int    `json:"columns"`
	PerPage int    `json:"per_page"`
	Sort    string `json:"sort"`

	Includes    AxisIncludes `json:"includes"`
	Excludes    AxisExcludes `json:"excludes"`
	SellableSet SellableSet  `json:"sellable_set"`
	OnlyCatalog string       `json:"only_catalog"` // "yes" selects the catalog pool

	Pagination   string `json:"pagination"`
	LoadMoreText string `json:"load_more_text"`

	GridLayout         string `json:"grid_layout"`
	MasonryGap         int    `json:"masonry_gap"`
	JustifiedRowHeight int    `json:"justified_row_height"`

	FiltersMode    string   `json:"filters_mode"` // manual|auto
	Filters        []string `json:"filters"`      // canonical facet ids
	TermsLimit     int      `json:"terms_limit"`
	TermsOrderBy   string   `json:"terms_orderby"` // count|name
	TermsOrder     string   `json:"terms_order"`   // ASC|DESC
	TermsShowMore  string   `json:"terms_show_more"`
	FilterPosition string   `json:"filter_position"`

	ShowExcerpt       string `json:"show_excerpt"`
	ExcerptLength     int    `json:"excerpt_length"`
	CatalogButtonText string `json:"catalog_button_text"`
}

// FetchRequest is the fetch endpoint body. The flattened filter fields hold
// the client's currently-selected chip values; facet state is never kept
// server side.
type FetchRequest struct {
	Attrs     WidgetAttrs `json:"shortcode_attrs"`
	Page      int         `json:"page"`
	Sort      string      `json:"sort"`
	CatIDs    []string    `json:"cat_ids"`
	TagIDs    []string    `json:"tag_ids"`
	BrandIDs  []string    `json:"brand_ids"`
	PriceMin  string      `json:"price_min"`
	PriceMax  string      `json:"price_max"`
	RatingMin int         `json:"rating_min"`
}

// ShellPayload is the success payload of the shell endpoint: the rendered
// widget markup plus the token and normalized attrs the client echoes back
// on every fetch.
type ShellPayload struct {
	HTML  string      `json:"html"`
	Token string      `json:"token"`
	Attrs WidgetAttrs `json:"attrs"`
}

// GridPayload is the success payload of the fetch endpoint.
type GridPayload struct {
	HTML     string   `json:"html"`
	IDs      []string `json:"ids"`
	Page     int      `json:"page"`
	MaxPages int      `json:"max_pages"`
	Total    int      `json:"total"`
	Columns  int      `json:"columns"`
	PerPage  int      `json:"per_page"`

	GridLayout         string `json:"grid_layout"`
	MasonryGap         int    `json:"masonry_gap"`
	JustifiedRowHeight int    `json:"justified_row_height"`
}
