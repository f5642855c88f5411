package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenthub/pkg/models"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestNormalizePerfumeDefaults(t *testing.T) {
	p := NormalizePerfume(RawPerfume{}, ProjectionList)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Unnamed Perfume", p.Name)
	assert.Equal(t, "unnamed-perfume", p.Slug)
	assert.Equal(t, "Unknown Brand", p.Brand)
	assert.Equal(t, "", p.Description)
	require.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
	require.NotNil(t, p.FragranceNotes)
	assert.Empty(t, p.FragranceNotes)

	// list projection leaves commerce fields absent
	assert.Nil(t, p.Ratings)
	assert.Nil(t, p.Sizes)
	assert.Nil(t, p.Reviews)
}

func TestNormalizePerfumeVerbatimFields(t *testing.T) {
	raw := RawPerfume{
		ID:          strp("p1"),
		Name:        strp("Gül Bahçesi"),
		Description: strp("rose garden"),
		Images:      []string{"a.jpg", "b.jpg"},
		Brand:       &RawBrandRef{Name: strp("Nishane")},
		Family:      strp("Floral"),
		Notes: []RawPerfumeNote{
			{NoteType: strp("top"), Note: &RawNoteRef{Name: strp("Bergamot")}},
			{NoteType: strp("weird"), Note: &RawNoteRef{Name: strp("Rose")}},
			{Note: &RawNoteRef{Name: strp("Musk")}},
			{NoteType: strp("heart")},
		},
	}

	p := NormalizePerfume(raw, ProjectionList)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "gul-bahcesi", p.Slug) // derived from the name, folded
	assert.Equal(t, "Nishane", p.Brand)
	assert.Equal(t, "Floral", p.Details.Family)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)

	// degraded rows are kept, source order preserved
	require.Len(t, p.FragranceNotes, 4)
	assert.Equal(t, models.FragranceNote{Name: "Bergamot", Type: models.NoteTop}, p.FragranceNotes[0])
	assert.Equal(t, models.NoteBase, p.FragranceNotes[1].Type) // unrecognized type
	assert.Equal(t, models.NoteBase, p.FragranceNotes[2].Type) // missing type
	assert.Equal(t, "Unknown Note", p.FragranceNotes[3].Name)  // missing note join
	assert.Equal(t, models.NoteHeart, p.FragranceNotes[3].Type)
}

func TestNormalizePerfumeDetailProjection(t *testing.T) {
	raw := RawPerfume{
		ID:              strp("p1"),
		Name:            strp("Aqua Marine"),
		LongDescription: strp("long text"),
		ReleaseYear:     intp(2019),
		Notes: []RawPerfumeNote{
			{NoteType: strp("base"), Note: &RawNoteRef{Name: strp("Amber"), Description: strp("warm")}},
		},
	}

	p := NormalizePerfume(raw, ProjectionDetail)

	assert.Equal(t, "long text", p.LongDescription)
	assert.Equal(t, 2019, p.Details.ReleaseYear)
	require.Len(t, p.FragranceNotes, 1)
	assert.Equal(t, "warm", p.FragranceNotes[0].Description)

	// detail projection materializes empty commerce defaults
	require.NotNil(t, p.Ratings)
	assert.Zero(t, p.Ratings.Count)
	assert.NotNil(t, p.Sizes)
	assert.NotNil(t, p.Reviews)
	assert.NotNil(t, p.RelatedProducts)
}

func TestNormalizePerfumeSyntheticIDsUniqueWithinLoad(t *testing.T) {
	a := NormalizePerfume(RawPerfume{}, ProjectionList)
	b := NormalizePerfume(RawPerfume{}, ProjectionList)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNormalizationTotality(t *testing.T) {
	payloads := []string{
		`{}`,
		`{"name": null, "images": null, "fragrance_notes": null}`,
		`{"name": "X", "fragrance_notes": [{}, {"note": {}}, {"note_type": "top"}]}`,
		`{"brand": {}}`,
		`{"id": "p1", "slug": null, "details_release_year": null}`,
	}

	for _, js := range payloads {
		var raw RawPerfume
		require.NoError(t, json.Unmarshal([]byte(js), &raw), js)

		for _, proj := range []Projection{ProjectionList, ProjectionDetail} {
			p := NormalizePerfume(raw, proj)
			assert.NotEmpty(t, p.Slug, js)
			assert.NotEmpty(t, p.Name, js)
			assert.NotNil(t, p.Images, js)
			assert.NotNil(t, p.FragranceNotes, js)
		}
	}
}

func TestNormalizeBrandDefaults(t *testing.T) {
	b := NormalizeBrand(RawBrand{})

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Unnamed Brand", b.Name)
	assert.Equal(t, "unnamed-brand", b.Slug)
	assert.Equal(t, "", b.Description)
	assert.False(t, b.Featured)
	assert.Zero(t, b.PerfumeCount)
}

func TestNormalizeBrandVerbatim(t *testing.T) {
	featured := true
	raw := RawBrand{
		ID:           strp("b1"),
		Name:         strp("Şişli Parfüm"),
		Category:     strp("Luxury"),
		FoundedYear:  intp(1987),
		Featured:     &featured,
		PerfumeCount: int64(12),
	}

	b := NormalizeBrand(raw)

	assert.Equal(t, "sisli-parfum", b.Slug)
	assert.Equal(t, "Luxury", b.Category)
	assert.Equal(t, 1987, b.FoundedYear)
	assert.True(t, b.Featured)
	assert.Equal(t, 12, b.PerfumeCount)
}

func TestNormalizeBrandSlugFallsBackToID(t *testing.T) {
	b := NormalizeBrand(RawBrand{ID: strp("b9"), Name: strp("!!!")})
	assert.Equal(t, "b9", b.Slug)
}

func TestNormalizeBrandCountAggregateFromJSON(t *testing.T) {
	var raw RawBrand
	require.NoError(t, json.Unmarshal([]byte(`{"name": "X", "perfume_count": [{"count": 7}]}`), &raw))
	assert.Equal(t, 7, NormalizeBrand(raw).PerfumeCount)
}

func TestExtractCount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"absent", nil, 0},
		{"scalar int", 7, 7},
		{"scalar int64", int64(7), 7},
		{"scalar float from json", float64(7), 7},
		{"aggregate row", []any{map[string]any{"count": float64(7)}}, 7},
		{"aggregate row int64", []any{map[string]any{"count": int64(3)}}, 3},
		{"empty aggregate", []any{}, 0},
		{"aggregate without count", []any{map[string]any{"n": 1}}, 0},
		{"aggregate wrong element", []any{"nope"}, 0},
		{"negative clamped", -4, 0},
		{"garbage", "seven", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCount(tt.in))
		})
	}
}
