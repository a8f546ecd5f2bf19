package catalog

import (
	"sort"

	"github.com/Technizer/ModeFilter-Pro/models"
)

// singleSelect lists the facets where choosing a chip replaces the previous
// choice. Taxonomy facets are multi-select within their axis.
var singleSelect = map[string]bool{
	models.FacetPrice:  true,
	models.FacetRating: true,
}

// Selection tracks the chip selection state of one widget instance, per
// facet. The empty value is the "All" chip; a facet with no entry in the
// map has "All" active. Invariant after every toggle: a facet either has
// "All" active or at least one specific chip, never neither, never both.
type Selection struct {
	chosen map[string]map[string]bool
}

func NewSelection() *Selection {
	return &Selection{chosen: map[string]map[string]bool{}}
}

// Toggle applies one chip interaction to a facet and re-establishes the
// selection invariant:
//
//   - selecting "All" (empty value) clears every specific chip;
//   - selecting a specific chip deactivates "All"; on single-select facets
//     it also replaces the previous chip;
//   - deselecting the last specific chip reactivates "All".
func (s *Selection) Toggle(facet, value string) {
	if value == "" {
		delete(s.chosen, facet)
		return
	}

	set := s.chosen[facet]
	if set == nil {
		set = map[string]bool{}
		s.chosen[facet] = set
	}

	if singleSelect[facet] {
		if set[value] {
			delete(s.chosen, facet)
		} else {
			s.chosen[facet] = map[string]bool{value: true}
		}
		return
	}

	if set[value] {
		delete(set, value)
		if len(set) == 0 {
			delete(s.chosen, facet)
		}
		return
	}
	set[value] = true
}

// AllActive reports whether the facet's "All" chip is the active state.
func (s *Selection) AllActive(facet string) bool {
	return len(s.chosen[facet]) == 0
}

// Values returns the selected chip values for a facet in stable order.
// Empty means "All".
func (s *Selection) Values(facet string) []string {
	set := s.chosen[facet]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Value returns the single selected value of a single-select facet, or ""
// when "All" is active.
func (s *Selection) Value(facet string) string {
	vals := s.Values(facet)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// Reset clears every facet back to "All".
func (s *Selection) Reset() {
	s.chosen = map[string]map[string]bool{}
}
