package catalog

import (
	"strings"

	"scenthub/pkg/models"
)

// Filter returns the perfumes matching sel, preserving input order.
//
// The facets combine with AND; values inside one facet combine with OR
// (set membership; the note facet matches when any of a perfume's notes
// is selected). An empty facet set is inactive and filters nothing. The
// trimmed, case-insensitive search text matches as a substring of the
// name, the brand, or any note name. Each stage only narrows the
// surviving set, so stage order never changes the result.
func Filter(perfumes []models.Perfume, sel *Selection) []models.Perfume {
	if sel == nil {
		return perfumes
	}

	out := perfumes

	if len(sel.Brands) > 0 {
		out = keep(out, func(p models.Perfume) bool {
			_, ok := sel.Brands[p.Brand]
			return ok
		})
	}

	if len(sel.Notes) > 0 {
		out = keep(out, func(p models.Perfume) bool {
			for _, n := range p.FragranceNotes {
				if _, ok := sel.Notes[n.Name]; ok {
					return true
				}
			}
			return false
		})
	}

	if len(sel.Families) > 0 {
		out = keep(out, func(p models.Perfume) bool {
			if p.Details.Family == "" {
				return false
			}
			_, ok := sel.Families[p.Details.Family]
			return ok
		})
	}

	if q := strings.TrimSpace(sel.SearchText); q != "" {
		q = strings.ToLower(q)
		out = keep(out, func(p models.Perfume) bool {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Brand), q) {
				return true
			}
			for _, n := range p.FragranceNotes {
				if strings.Contains(strings.ToLower(n.Name), q) {
					return true
				}
			}
			return false
		})
	}

	return out
}

func keep(in []models.Perfume, match func(models.Perfume) bool) []models.Perfume {
	out := make([]models.Perfume, 0, len(in))
	for _, p := range in {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}
