package catalog

import (
	"encoding/json"

	"github.com/google/uuid"

	"scenthub/pkg/models"
	"scenthub/pkg/slug"
)

// Projection identifies which fetch shape produced a raw record. The
// list projection carries fewer joined fields than the detail one; the
// normalizer accepts both without the caller pre-validating anything.
type Projection int

const (
	ProjectionList Projection = iota
	ProjectionDetail
)

// Fallbacks applied when a nullable source field is absent.
const (
	unnamedPerfume = "Unnamed Perfume"
	unnamedBrand   = "Unnamed Brand"
	unknownBrand   = "Unknown Brand"
	unknownNote    = "Unknown Note"
)

// NormalizePerfume maps a raw store record into the canonical Perfume.
//
// It is total: any combination of missing fields degrades to the
// documented defaults, never to an error. Missing identifiers get a
// synthetic ID unique within the current load (not stable across loads);
// a missing slug is derived from the name, and when even that comes out
// empty the ID doubles as the routing slug.
func NormalizePerfume(raw RawPerfume, p Projection) models.Perfume {
	name := strOr(raw.Name, unnamedPerfume)

	out := models.Perfume{
		ID:          strOr(raw.ID, ""),
		Name:        name,
		Slug:        strOr(raw.Slug, ""),
		Brand:       unknownBrand,
		Description: strOr(raw.Description, ""),
		Images:      raw.Images,
		Details: models.PerfumeDetails{
			Gender:        strOr(raw.Gender, ""),
			Family:        strOr(raw.Family, ""),
			Concentration: strOr(raw.Concentration, ""),
			ReleaseYear:   intOr(raw.ReleaseYear),
			Longevity:     strOr(raw.Longevity, ""),
			Sillage:       strOr(raw.Sillage, ""),
		},
	}

	if out.ID == "" {
		out.ID = "perfume-" + uuid.NewString()
	}
	if out.Slug == "" {
		out.Slug = slug.Derive(name)
	}
	if out.Slug == "" {
		out.Slug = out.ID
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if raw.Brand != nil && raw.Brand.Name != nil {
		out.Brand = *raw.Brand.Name
	}

	// Each join row degrades independently; a half-empty row is kept,
	// never dropped, so source ordering survives.
	out.FragranceNotes = make([]models.FragranceNote, 0, len(raw.Notes))
	for _, row := range raw.Notes {
		out.FragranceNotes = append(out.FragranceNotes, normalizeNote(row, p))
	}

	if p == ProjectionDetail {
		out.LongDescription = strOr(raw.LongDescription, "")
		out.Ratings = &models.Ratings{}
		out.Sizes = []models.Size{}
		out.Reviews = []models.Review{}
		out.RelatedProducts = []string{}
	}

	return out
}

func normalizeNote(row RawPerfumeNote, p Projection) models.FragranceNote {
	n := models.FragranceNote{
		Name: unknownNote,
		Type: models.NoteBase,
	}
	if row.Note != nil && row.Note.Name != nil {
		n.Name = *row.Note.Name
	}
	if row.NoteType != nil {
		switch t := models.NoteType(*row.NoteType); t {
		case models.NoteTop, models.NoteHeart, models.NoteBase:
			n.Type = t
		}
	}
	// Note descriptions are only fetched by the detail projection.
	if p == ProjectionDetail && row.Note != nil && row.Note.Description != nil {
		n.Description = *row.Note.Description
	}
	return n
}

// NormalizeBrand maps a raw brand row into the canonical Brand, with the
// same totality guarantee as NormalizePerfume.
func NormalizeBrand(raw RawBrand) models.Brand {
	name := strOr(raw.Name, unnamedBrand)

	out := models.Brand{
		ID:              strOr(raw.ID, ""),
		Name:            name,
		Slug:            strOr(raw.Slug, ""),
		Description:     strOr(raw.Description, ""),
		LongDescription: strOr(raw.LongDescription, ""),
		Logo:            strOr(raw.Logo, ""),
		Banner:          strOr(raw.Banner, ""),
		FoundedYear:     intOr(raw.FoundedYear),
		Headquarters:    strOr(raw.Headquarters, ""),
		Category:        strOr(raw.Category, ""),
		Featured:        raw.Featured != nil && *raw.Featured,
		PerfumeCount:    extractCount(raw.PerfumeCount),
	}

	if out.ID == "" {
		out.ID = "brand-" + uuid.NewString()
	}
	if out.Slug == "" {
		out.Slug = slug.Derive(name)
	}
	if out.Slug == "" {
		out.Slug = out.ID
	}

	return out
}

// extractCount decodes the relation-count aggregate. Two shapes are
// supported: an array-of-one aggregate row ([{"count": N}]) and a bare
// numeric scalar; everything else counts as zero. The result is never
// negative and the decode never panics.
func extractCount(v any) int {
	switch c := v.(type) {
	case nil:
		return 0
	case int:
		return clampCount(c)
	case int64:
		return clampCount(int(c))
	case float64:
		return clampCount(int(c))
	case json.Number:
		n, err := c.Int64()
		if err != nil {
			return 0
		}
		return clampCount(int(n))
	case []any:
		if len(c) == 0 {
			return 0
		}
		row, ok := c[0].(map[string]any)
		if !ok {
			return 0
		}
		return extractCount(row["count"])
	default:
		return 0
	}
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
