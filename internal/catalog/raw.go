package catalog

// Raw record shapes as fetched from the relational store, before
// normalization. Every field the store may omit is a pointer (or a nil
// slice); the normalizer owns all defaulting, so consumers never touch
// these directly.

// RawBrandRef is the joined brand sub-record on a perfume row. The list
// projection fetches only the name; the detail projection adds id and
// slug.
type RawBrandRef struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// RawNoteRef is the joined note sub-record on a perfume-note row.
type RawNoteRef struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// RawPerfumeNote is one row of the perfume-note many-to-many join.
type RawPerfumeNote struct {
	NoteType *string     `json:"note_type"`
	Note     *RawNoteRef `json:"note"`
}

// RawPerfume is a perfume row with its joined sub-entities. Which fields
// are populated depends on the projection that fetched it.
type RawPerfume struct {
	ID              *string          `json:"id"`
	Name            *string          `json:"name"`
	Slug            *string          `json:"slug"`
	Description     *string          `json:"description"`
	LongDescription *string          `json:"long_description"`
	Images          []string         `json:"images"`
	Brand           *RawBrandRef     `json:"brand"`
	Notes           []RawPerfumeNote `json:"fragrance_notes"`

	Gender        *string `json:"details_gender"`
	Family        *string `json:"details_family"`
	Concentration *string `json:"details_concentration"`
	ReleaseYear   *int    `json:"details_release_year"`
	Longevity     *string `json:"details_longevity"`
	Sillage       *string `json:"details_sillage"`
}

// RawBrand is a brand row as fetched, including the relation-count
// aggregate in whichever shape the store produced it.
type RawBrand struct {
	ID              *string `json:"id"`
	Name            *string `json:"name"`
	Slug            *string `json:"slug"`
	Description     *string `json:"description"`
	LongDescription *string `json:"long_description"`
	Logo            *string `json:"logo_url"`
	Banner          *string `json:"banner_url"`
	FoundedYear     *int    `json:"founded_year"`
	Headquarters    *string `json:"headquarters"`
	Category        *string `json:"category"`
	Featured        *bool   `json:"is_featured"`

	// PerfumeCount is either an array-of-one aggregate row
	// ([{"count": N}]), a bare number, or absent.
	PerfumeCount any `json:"perfume_count"`
}
