package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Technizer/ModeFilter-Pro/models"
)

func TestNormalizeScopePoolSelection(t *testing.T) {
	attrs := models.WidgetAttrs{SellableSet: models.SellableSet{CatSlug: "summer"}}

	sc := NormalizeScope(attrs, models.FetchRequest{}, 100)
	assert.Equal(t, PoolSellable, sc.Pool)
	assert.Equal(t, "summer", sc.BaseCategorySlug)
	assert.Equal(t, 100, sc.MaxPool)

	attrs.OnlyCatalog = "yes"
	sc = NormalizeScope(attrs, models.FetchRequest{}, 100)
	assert.Equal(t, PoolCatalog, sc.Pool)
	// The base category scope only applies to the sellable pool.
	assert.Equal(t, "", sc.BaseCategorySlug)
}

func TestNormalizeScopeDropsSelectionsForDisabledFacets(t *testing.T) {
	id := uuid.Must(uuid.NewV7()).String()

	attrs := models.WidgetAttrs{Filters: []string{"categories"}}
	req := models.FetchRequest{
		CatIDs:   []string{id},
		TagIDs:   []string{id},
		PriceMin: "10",
		PriceMax: "50",
	}

	sc := NormalizeScope(attrs, req, 100)
	assert.Len(t, sc.Select[models.AxisCategory], 1)
	assert.Empty(t, sc.Select[models.AxisTag])
	assert.Nil(t, sc.PriceMin)
	assert.Nil(t, sc.PriceMax)
}

func TestNormalizeScopeStockSortsBecomeConstraints(t *testing.T) {
	cases := []struct {
		sort  string
		stock string
	}{
		{SortInStock, models.StockInStock},
		{SortPreorder, models.StockPreorder},
		{SortOutOfStock, models.StockOutOfStock},
	}

	for _, tc := range cases {
		sc := NormalizeScope(models.WidgetAttrs{}, models.FetchRequest{Sort: tc.sort}, 100)
		assert.Equal(t, tc.stock, sc.StockStatus, "sort %s", tc.sort)
		assert.Equal(t, SortNewest, sc.Sort)
	}
}

func TestNormalizeScopeUnknownSortFallsBackToNewest(t *testing.T) {
	sc := NormalizeScope(models.WidgetAttrs{}, models.FetchRequest{Sort: "popularity"}, 100)
	assert.Equal(t, SortNewest, sc.Sort)
	assert.Equal(t, "", sc.StockStatus)
}

func TestNormalizeScopeRequestSortOverridesAttrs(t *testing.T) {
	attrs := models.WidgetAttrs{Sort: SortPriceDesc}

	sc := NormalizeScope(attrs, models.FetchRequest{}, 100)
	assert.Equal(t, SortPriceDesc, sc.Sort)

	sc = NormalizeScope(attrs, models.FetchRequest{Sort: SortPriceAsc}, 100)
	assert.Equal(t, SortPriceAsc, sc.Sort)
}

func TestNormalizeScopeRatingBounds(t *testing.T) {
	attrs := models.WidgetAttrs{Filters: []string{"rating"}}

	sc := NormalizeScope(attrs, models.FetchRequest{RatingMin: 4}, 100)
	assert.Equal(t, 4, sc.RatingMin)

	sc = NormalizeScope(attrs, models.FetchRequest{RatingMin: 9}, 100)
	assert.Equal(t, 0, sc.RatingMin)
}

func TestNormalizeFacetIDsAliasesAndDuplicates(t *testing.T) {
	got := NormalizeFacetIDs([]string{"Category", "tags", "tag", "unknown", "PRICE", "price"})
	assert.Equal(t, []string{models.FacetCategories, models.FacetTags, models.FacetPrice}, got)
}

func TestParseIDListDropsInvalid(t *testing.T) {
	valid := uuid.Must(uuid.NewV7())

	got := parseIDList([]string{valid.String(), "not-a-uuid", "", valid.String(), uuid.Nil.String()})
	require.Len(t, got, 1)
	assert.Equal(t, valid, got[0])
}

func TestParsePrice(t *testing.T) {
	assert.Nil(t, parsePrice(""))
	assert.Nil(t, parsePrice("abc"))

	p := parsePrice("149,90")
	require.NotNil(t, p)
	assert.InDelta(t, 149.90, *p, 0.001)

	neg := parsePrice("-5")
	require.NotNil(t, neg)
	assert.Equal(t, 0.0, *neg)
}
