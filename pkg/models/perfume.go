package models

// Perfume is the normalized, internal form of a catalog entry.
//
// All raw store records are mapped into this structure first (with every
// nullable field defaulted), then the facet and filter layers consume it
// as an immutable snapshot.
type Perfume struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Brand           string          `json:"brand"`
	Description     string          `json:"description"`
	LongDescription string          `json:"long_description,omitempty"`
	Images          []string        `json:"images"`
	FragranceNotes  []FragranceNote `json:"fragrance_notes"`
	Details         PerfumeDetails  `json:"details"`

	// Commerce fields depend on the fetch projection and may be entirely
	// absent (list view) or present with empty defaults (detail view).
	Price           *float64 `json:"price,omitempty"`
	DiscountPrice   *float64 `json:"discount_price,omitempty"`
	Ratings         *Ratings `json:"ratings,omitempty"`
	Sizes           []Size   `json:"sizes,omitempty"`
	Reviews         []Review `json:"reviews,omitempty"`
	RelatedProducts []string `json:"related_products,omitempty"`
}

// NoteType places a fragrance note in the olfactory pyramid.
type NoteType string

const (
	NoteTop   NoteType = "top"
	NoteHeart NoteType = "heart"
	NoteBase  NoteType = "base"
)

// FragranceNote is one row of the perfume↔note join, flattened.
type FragranceNote struct {
	Name        string   `json:"name"`
	Type        NoteType `json:"type"`
	Description string   `json:"description"`
}

// PerfumeDetails carries structured attributes. Each field is
// individually optional; the zero value means the source had nothing.
type PerfumeDetails struct {
	Gender        string `json:"gender,omitempty"`
	Family        string `json:"family,omitempty"`
	Concentration string `json:"concentration,omitempty"`
	ReleaseYear   int    `json:"release_year,omitempty"`
	Longevity     string `json:"longevity,omitempty"`
	Sillage       string `json:"sillage,omitempty"`
}

// Ratings is the aggregate review score shown on detail pages.
type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Size is one purchasable bottle size.
type Size struct {
	Value       string  `json:"value"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available"`
}

// Review is a single customer review.
type Review struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Date     string `json:"date"`
	Comment  string `json:"comment"`
	Helpful  int    `json:"helpful"`
}

// NotePyramid groups note names by pyramid level for display.
// Source order is preserved within each level.
func (p Perfume) NotePyramid() map[NoteType][]string {
	pyramid := map[NoteType][]string{
		NoteTop:   {},
		NoteHeart: {},
		NoteBase:  {},
	}
	for _, n := range p.FragranceNotes {
		if n.Name == "" {
			continue
		}
		pyramid[n.Type] = append(pyramid[n.Type], n.Name)
	}
	return pyramid
}
