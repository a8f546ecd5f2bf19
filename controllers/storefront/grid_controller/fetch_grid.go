package grid_controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
	"github.com/Technizer/ModeFilter-Pro/store"
)

// FetchGrid godoc
// @Summary Fetch one grid page
// @Description Build the candidate pool for the widget's scope and current chip selections, filter it to the requested mode pool, paginate and render the page of cards.
// @Tags Storefront - Grid
// @Accept json
// @Produce json
// @Param request body models.FetchRequest true "Widget attrs plus current selections"
// @Success 200 {object} models.ApiResponse "Grid page fetched successfully"
// @Failure 400 {object} models.ApiResponse "Malformed request"
// @Failure 503 {object} models.ApiResponse "Store backend unavailable"
// @Router /store/grid [post]
func (h *Handler) FetchGrid(c *gin.Context) {
	var req models.FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	attrs := normalizeAttrs(req.Attrs)
	scope := catalog.NormalizeScope(attrs, req, h.MaxPool)

	settings, err := h.settings(c)
	if err != nil {
		log.Printf("❌ Settings read failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	candidates, err := h.Store.CandidateIDs(c, scope)
	if err != nil {
		if errors.Is(err, store.ErrPoolTooLarge) {
			log.Printf("❌ Candidate pool over cap for %s pool", scope.Pool)
		} else {
			log.Printf("❌ Candidate query failed: %v", err)
		}
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	inputs, err := h.Store.ModeInputs(c, candidates)
	if err != nil {
		log.Printf("❌ Mode input load failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	termDefaults, err := h.Store.TermDefaults(c)
	if err != nil {
		log.Printf("❌ Term defaults load failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	resolver := catalog.NewResolver(settings, inputs, termDefaults)
	eligible := catalog.FilterEligible(candidates, resolver, scope.Pool)
	page := catalog.Paginate(eligible, req.Page, attrs.PerPage)

	entries, err := h.Store.EntriesByIDs(c, page.IDs)
	if err != nil {
		log.Printf("❌ Page hydration failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	html, cards, err := h.Renderer.RenderCards(entries, resolver, settings, attrs)
	if err != nil {
		log.Printf("❌ Card render failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	ids := make([]string, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ID)
	}

	// An empty page is a normal outcome, not an error: the payload says
	// total 0 and the client renders its own empty state.
	payload := models.GridPayload{
		HTML:     html,
		IDs:      ids,
		Page:     page.Page,
		MaxPages: page.TotalPages,
		Total:    page.Total,
		Columns:  attrs.Columns,
		PerPage:  attrs.PerPage,

		GridLayout:         attrs.GridLayout,
		MasonryGap:         attrs.MasonryGap,
		JustifiedRowHeight: attrs.JustifiedRowHeight,
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(
		c,
		"Grid page fetched successfully",
		payload,
		&models.Pagination{
			Page:       page.Page,
			Limit:      attrs.PerPage,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	))
}
