package grid_controller

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
	"github.com/Technizer/ModeFilter-Pro/services"
	"github.com/Technizer/ModeFilter-Pro/utils"
)

// RenderShell godoc
// @Summary Render the initial widget shell
// @Description Resolve the embed directive, build the first grid page and the facet blocks for its pool, and return the full widget markup plus the token the client echoes on fetches.
// @Tags Storefront - Grid
// @Produce json
// @Param attrs query string false "JSON-encoded widget attrs"
// @Success 200 {object} models.ApiResponse "Shell rendered successfully"
// @Failure 400 {object} models.ApiResponse "Malformed attrs"
// @Failure 503 {object} models.ApiResponse "Store backend unavailable"
// @Router /store/grid/shell [get]
func (h *Handler) RenderShell(c *gin.Context) {
	var attrs models.WidgetAttrs
	if raw := c.Query("attrs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid attrs parameter"))
			return
		}
	}
	attrs = normalizeAttrs(attrs)

	// Term scopes arrive as slugs or ids; resolve them to ids once here so
	// every later fetch echoes plain ids.
	scopeRefs := []struct {
		axis string
		refs *[]string
	}{
		{models.AxisCategory, &attrs.Includes.CatIn},
		{models.AxisTag, &attrs.Includes.TagIn},
		{models.AxisBrand, &attrs.Includes.BrandIn},
		{models.AxisCategory, &attrs.Excludes.Cat},
		{models.AxisTag, &attrs.Excludes.Tag},
		{models.AxisBrand, &attrs.Excludes.Brand},
	}
	for _, target := range scopeRefs {
		resolved, err := h.resolveRefs(c, target.axis, *target.refs)
		if err != nil {
			log.Printf("❌ Term scope resolution failed (%s): %v", target.axis, err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
			return
		}
		*target.refs = resolved
	}

	settings, err := h.settings(c)
	if err != nil {
		log.Printf("❌ Settings read failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	scope := catalog.NormalizeScope(attrs, models.FetchRequest{}, h.MaxPool)

	candidates, err := h.Store.CandidateIDs(c, scope)
	if err != nil {
		log.Printf("❌ Candidate query failed: %v", err)
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
	page := catalog.Paginate(eligible, 1, attrs.PerPage)

	entries, err := h.Store.EntriesByIDs(c, page.IDs)
	if err != nil {
		log.Printf("❌ Page hydration failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	gridHTML, _, err := h.Renderer.RenderCards(entries, resolver, settings, attrs)
	if err != nil {
		log.Printf("❌ Card render failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	// Facet blocks are built from the eligible pool, so chip counts and
	// availability reflect exactly what the grid can show.
	terms := catalog.AxisTerms{}
	for _, axis := range models.Axes() {
		axisTerms, err := h.Store.TermsForEntries(c, axis, eligible)
		if err != nil {
			log.Printf("❌ Term query failed (%s): %v", axis, err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
			return
		}
		terms[axis] = axisTerms
	}

	sampleIDs := eligible
	if len(sampleIDs) > catalog.DetectionSample {
		sampleIDs = sampleIDs[:catalog.DetectionSample]
	}
	sample, err := h.Store.Sample(c, sampleIDs)
	if err != nil {
		log.Printf("❌ Sample query failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	available := catalog.DetectFacets(terms, scope.Exclude, sample)
	selected := catalog.SelectFacets(attrs.FiltersMode, attrs.Filters, available)
	blocks := catalog.BuildBlocks(selected, terms, scope.Exclude, chipOptions(attrs))

	token, err := utils.GenerateWidgetToken()
	if err != nil {
		log.Printf("❌ Widget token mint failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	shellHTML, err := h.Renderer.RenderShell(services.ShellData{
		Attrs:    attrs,
		Token:    token,
		Facets:   blocks,
		GridHTML: gridHTML,
		Page:     page.Page,
		MaxPages: page.TotalPages,
		Total:    page.Total,
	})
	if err != nil {
		log.Printf("❌ Shell render failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Store backend unavailable"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Shell rendered successfully", models.ShellPayload{
		HTML:  shellHTML,
		Token: token,
		Attrs: attrs,
	}))
}

// resolveRefs maps mixed slug/id refs to id strings for one axis.
func (h *Handler) resolveRefs(c *gin.Context, axis string, refs []string) ([]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	ids, err := h.Store.ResolveTermRefs(c, axis, refs)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out, nil
}
