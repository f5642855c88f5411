package catalog

import (
	"sort"

	"scenthub/pkg/models"
)

// Facets are the distinct filterable values present in one loaded
// perfume snapshot. They are recomputed in full whenever the snapshot
// changes; nothing is maintained incrementally.
type Facets struct {
	Brands   []string `json:"brands"`
	Notes    []string `json:"notes"`
	Families []string `json:"families"`
}

// BuildFacets derives the facet value sets from a snapshot. Values are
// deduplicated and sorted, so the result does not depend on which entity
// contributed a value first.
func BuildFacets(perfumes []models.Perfume) Facets {
	brands := make(map[string]struct{})
	notes := make(map[string]struct{})
	families := make(map[string]struct{})

	for _, p := range perfumes {
		if p.Brand != "" {
			brands[p.Brand] = struct{}{}
		}
		for _, n := range p.FragranceNotes {
			notes[n.Name] = struct{}{}
		}
		if p.Details.Family != "" {
			families[p.Details.Family] = struct{}{}
		}
	}

	return Facets{
		Brands:   sortedKeys(brands),
		Notes:    sortedKeys(notes),
		Families: sortedKeys(families),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
