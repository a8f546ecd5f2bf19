package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Technizer/ModeFilter-Pro/models"
)

func TestSelectionStartsWithAllActive(t *testing.T) {
	s := NewSelection()
	assert.True(t, s.AllActive(models.FacetCategories))
	assert.Empty(t, s.Values(models.FacetCategories))
}

func TestSelectionMultiSelectToggles(t *testing.T) {
	s := NewSelection()

	s.Toggle(models.FacetCategories, "a")
	s.Toggle(models.FacetCategories, "b")
	assert.False(t, s.AllActive(models.FacetCategories))
	assert.Equal(t, []string{"a", "b"}, s.Values(models.FacetCategories))

	s.Toggle(models.FacetCategories, "a")
	assert.Equal(t, []string{"b"}, s.Values(models.FacetCategories))
}

func TestSelectionDeselectingLastChipReactivatesAll(t *testing.T) {
	s := NewSelection()

	s.Toggle(models.FacetTags, "x")
	s.Toggle(models.FacetTags, "x")

	assert.True(t, s.AllActive(models.FacetTags))
	assert.Empty(t, s.Values(models.FacetTags))
}

func TestSelectionAllChipClearsFacet(t *testing.T) {
	s := NewSelection()

	s.Toggle(models.FacetBrands, "x")
	s.Toggle(models.FacetBrands, "y")
	s.Toggle(models.FacetBrands, "")

	assert.True(t, s.AllActive(models.FacetBrands))
}

func TestSelectionSingleSelectReplaces(t *testing.T) {
	s := NewSelection()

	s.Toggle(models.FacetPrice, "0|50")
	s.Toggle(models.FacetPrice, "50|100")

	assert.Equal(t, "50|100", s.Value(models.FacetPrice))
	assert.Equal(t, []string{"50|100"}, s.Values(models.FacetPrice))
}

func TestSelectionSingleSelectReclickClears(t *testing.T) {
	s := NewSelection()

	s.Toggle(models.FacetRating, "4")
	s.Toggle(models.FacetRating, "4")

	assert.True(t, s.AllActive(models.FacetRating))
	assert.Equal(t, "", s.Value(models.FacetRating))
}

func TestSelectionFacetsAreIndependent(t *testing.T) {
	s := NewSelection()

	s.Toggle(models.FacetCategories, "a")
	s.Toggle(models.FacetPrice, "0|50")
	s.Toggle(models.FacetCategories, "")

	assert.True(t, s.AllActive(models.FacetCategories))
	assert.Equal(t, "0|50", s.Value(models.FacetPrice))
}

func TestSelectionReset(t *testing.T) {
	s := NewSelection()

	s.Toggle(models.FacetCategories, "a")
	s.Toggle(models.FacetRating, "3")
	s.Reset()

	assert.True(t, s.AllActive(models.FacetCategories))
	assert.True(t, s.AllActive(models.FacetRating))
}
