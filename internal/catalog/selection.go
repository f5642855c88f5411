package catalog

import "strings"

// Facet identifies one filterable dimension.
type Facet int

const (
	FacetBrand Facet = iota
	FacetNote
	FacetFamily
)

// Selection holds the active search text and the chosen values per
// facet. It is owned by a single caller (the request path); every
// operation is a synchronous, atomic transition, so there is no
// internal locking.
type Selection struct {
	SearchText string
	Brands     map[string]struct{}
	Notes      map[string]struct{}
	Families   map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{
		Brands:   make(map[string]struct{}),
		Notes:    make(map[string]struct{}),
		Families: make(map[string]struct{}),
	}
}

func (s *Selection) facetSet(f Facet) map[string]struct{} {
	switch f {
	case FacetBrand:
		return s.Brands
	case FacetNote:
		return s.Notes
	default:
		return s.Families
	}
}

// Toggle adds value to the facet's set, or removes it when already
// present.
func (s *Selection) Toggle(f Facet, value string) {
	set := s.facetSet(f)
	if _, ok := set[value]; ok {
		delete(set, value)
		return
	}
	set[value] = struct{}{}
}

// ApplyBatch replaces all three facet sets at once; the filter dialog
// commits its staged choices in a single step rather than per click.
func (s *Selection) ApplyBatch(brands, notes, families []string) {
	s.Brands = toSet(brands)
	s.Notes = toSet(notes)
	s.Families = toSet(families)
}

func (s *Selection) SetSearchText(text string) {
	s.SearchText = text
}

// ClearAll resets the search text and all three facet sets.
func (s *Selection) ClearAll() {
	s.SearchText = ""
	s.Brands = make(map[string]struct{})
	s.Notes = make(map[string]struct{})
	s.Families = make(map[string]struct{})
}

// Values returns the facet's selected values, sorted, for rendering
// active-filter chips.
func (s *Selection) Values(f Facet) []string {
	return sortedKeys(s.facetSet(f))
}

// ActiveCount counts selected facet values plus one for a non-blank
// search, mirroring the filter-badge count in the UI.
func (s *Selection) ActiveCount() int {
	n := len(s.Brands) + len(s.Notes) + len(s.Families)
	if strings.TrimSpace(s.SearchText) != "" {
		n++
	}
	return n
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
