package services

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
)

// Renderer produces the grid card markup and the initial shell markup.
// Templates are parsed once at startup; RenderCards and RenderShell are
// safe for concurrent use.
type Renderer struct {
	card  *template.Template
	shell *template.Template
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"price": formatPrice,
	}
	return &Renderer{
		card:  template.Must(template.New("card").Funcs(funcs).Parse(cardTemplate)),
		shell: template.Must(template.New("shell").Funcs(funcs).Parse(shellTemplate)),
	}
}

// cardView is one card's template input. The mode decides price visibility
// and which action button renders.
type cardView struct {
	ID          string
	Name        string
	Image       string
	Price       float64
	ShowPrice   bool
	Sellable    bool
	ButtonLabel string
	ButtonURL   string
	Excerpt     string
	StockStatus string
}

// RenderCards renders one page of entries into grid card markup. Mode is
// resolved per entry; catalog-only cards hide the price when settings say
// so and swap the cart button for the enquiry button.
func (r *Renderer) RenderCards(entries []models.Entry, resolver *catalog.Resolver, settings models.StoreSettings, attrs models.WidgetAttrs) (string, []models.EntryCard, error) {
	var sb strings.Builder
	cards := make([]models.EntryCard, 0, len(entries))

	for _, e := range entries {
		mode := resolver.Resolve(e.ID)
		view := cardView{
			ID:          e.ID.String(),
			Name:        e.Name,
			Image:       e.Image,
			Price:       e.Price,
			ShowPrice:   true,
			Sellable:    mode == catalog.ModeSellable,
			StockStatus: e.StockStatus,
		}
		if mode == catalog.ModeCatalogOnly {
			if settings.HidePrices {
				view.ShowPrice = false
			}
			if settings.ReplaceButton {
				view.ButtonLabel = settings.ButtonLabel
				if attrs.CatalogButtonText != "" {
					view.ButtonLabel = attrs.CatalogButtonText
				}
				view.ButtonURL = settings.ButtonURL
			}
		}
		if attrs.ShowExcerpt == "yes" {
			view.Excerpt = trimWords(e.Description, attrs.ExcerptLength)
		}

		if err := r.card.Execute(&sb, view); err != nil {
			return "", nil, fmt.Errorf("card render: %w", err)
		}

		cards = append(cards, models.EntryCard{
			ID:    e.ID.String(),
			Name:  e.Name,
			Image: e.Image,
			Price: e.Price,
			Mode:  string(mode),
		})
	}

	return sb.String(), cards, nil
}

// ShellData is the input for the initial widget shell.
type ShellData struct {
	Attrs    models.WidgetAttrs
	Token    string
	Facets   []models.FacetBlock
	GridHTML string
	Page     int
	MaxPages int
	Total    int
}

type shellView struct {
	Attrs     models.WidgetAttrs
	AttrsJSON string
	Token     string
	Facets    []models.FacetBlock
	GridHTML  template.HTML
	Page      int
	MaxPages  int
	Total     int
	HasMore   bool
}

// RenderShell renders the full widget: filter sidebar, grid with the first
// page of cards, and the pagination control matching the configured
// strategy. The widget attrs and token are embedded as data attributes for
// the client to echo back.
func (r *Renderer) RenderShell(data ShellData) (string, error) {
	attrsJSON, err := json.Marshal(data.Attrs)
	if err != nil {
		return "", fmt.Errorf("attrs marshal: %w", err)
	}

	view := shellView{
		Attrs:     data.Attrs,
		AttrsJSON: string(attrsJSON),
		Token:     data.Token,
		Facets:    data.Facets,
		GridHTML:  template.HTML(data.GridHTML),
		Page:      data.Page,
		MaxPages:  data.MaxPages,
		Total:     data.Total,
		HasMore:   data.Page < data.MaxPages,
	}

	var sb strings.Builder
	if err := r.shell.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("shell render: %w", err)
	}
	return sb.String(), nil
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

// trimWords truncates to n words with an ellipsis, whole words only.
func trimWords(s string, n int) string {
	if n <= 0 {
		n = 20
	}
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "…"
}

const cardTemplate = `<article class="mfp-card mfp-card--{{if .Sellable}}sellable{{else}}catalog{{end}}" data-id="{{.ID}}" data-stock="{{.StockStatus}}">
  {{if .Image}}<img class="mfp-card__image" src="{{.Image}}" alt="{{.Name}}" loading="lazy">{{end}}
  <h3 class="mfp-card__name">{{.Name}}</h3>
  {{if .Excerpt}}<p class="mfp-card__excerpt">{{.Excerpt}}</p>{{end}}
  {{if .ShowPrice}}<span class="mfp-card__price">{{price .Price}}</span>{{end}}
  {{if .Sellable}}<button class="mfp-card__button mfp-card__button--cart" type="button">Add to cart</button>
  {{else if .ButtonLabel}}<a class="mfp-card__button mfp-card__button--enquire"{{if .ButtonURL}} href="{{.ButtonURL}}"{{end}}>{{.ButtonLabel}}</a>
  {{end}}</article>
`

const shellTemplate = `<div class="mfp-widget mfp-widget--filters-{{.Attrs.FilterPosition}}"
     data-token="{{.Token}}"
     data-attrs="{{.AttrsJSON}}"
     data-page="{{.Page}}"
     data-max-pages="{{.MaxPages}}"
     data-total="{{.Total}}">
  {{if .Facets}}<aside class="mfp-filters">
    {{range .Facets}}<div class="mfp-facet" data-facet="{{.ID}}" data-filter-key="{{.FilterKey}}">
      <h4 class="mfp-facet__label">{{.Label}}</h4>
      <ul class="mfp-facet__chips{{if .HasMore}} mfp-facet__chips--overflow{{end}}">
        {{range .Chips}}<li class="mfp-chip{{if .Active}} mfp-chip--active{{end}}{{if .Hidden}} mfp-chip--hidden{{end}}" data-value="{{.Value}}">{{.Label}}</li>
        {{end}}</ul>
      {{if .HasMore}}<button class="mfp-facet__more" type="button">Show more</button>{{end}}
    </div>
    {{end}}</aside>{{end}}
  <div class="mfp-grid mfp-grid--{{.Attrs.GridLayout}}"
       style="--mfp-columns: {{.Attrs.Columns}};{{if eq .Attrs.GridLayout "masonry"}} --mfp-gap: {{.Attrs.MasonryGap}}px;{{end}}{{if eq .Attrs.GridLayout "justified"}} --mfp-row-height: {{.Attrs.JustifiedRowHeight}}px;{{end}}">
    {{.GridHTML}}</div>
  {{if eq .Attrs.Pagination "load_more"}}{{if .HasMore}}<button class="mfp-load-more" type="button">{{if .Attrs.LoadMoreText}}{{.Attrs.LoadMoreText}}{{else}}Load more{{end}}</button>{{end}}
  {{else if eq .Attrs.Pagination "infinite"}}<div class="mfp-sentinel" aria-hidden="true"></div>
  {{else if eq .Attrs.Pagination "numbers"}}<nav class="mfp-pages" data-max-pages="{{.MaxPages}}"></nav>
  {{end}}</div>
`
