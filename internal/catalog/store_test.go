package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenthub/pkg/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // keep the in-memory db on a single connection
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateFile(db, "../../docs/schema.sql"))
	return NewStore(db, logrus.New())
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func seedCatalog(t *testing.T, s *Store) {
	t.Helper()

	mustExec(t, s.DB, `INSERT INTO brands (id, name, slug, description, founded_year, category, is_featured)
		VALUES ('b1', 'Nishane', 'nishane', 'Istanbul niche house', 2012, 'Niche', 1)`)
	mustExec(t, s.DB, `INSERT INTO brands (id, name, slug) VALUES ('b2', 'Ajmal', 'ajmal')`)
	mustExec(t, s.DB, `INSERT INTO brands (id, slug) VALUES ('b3', 'mystery')`)

	mustExec(t, s.DB, `INSERT INTO perfumes (id, name, slug, brand_id, description, long_description, images,
			details_gender, details_family, details_concentration, details_release_year,
			details_longevity, details_sillage)
		VALUES ('p1', 'Baraonda', 'baraonda', 'b1', 'whisky and roses', 'a long story', '["x.jpg","y.jpg"]',
			'Unisex', 'Woody', 'Extrait', 2015, 'Long', 'Heavy')`)
	mustExec(t, s.DB, `INSERT INTO perfumes (id, name, slug, brand_id) VALUES ('p2', 'Ani', 'ani', 'b1')`)
	mustExec(t, s.DB, `INSERT INTO perfumes (id) VALUES ('p3')`)

	mustExec(t, s.DB, `INSERT INTO notes (id, name, description) VALUES ('n1', 'Rose', 'queen of flowers')`)
	mustExec(t, s.DB, `INSERT INTO notes (id, name) VALUES ('n2', 'Oud')`)

	mustExec(t, s.DB, `INSERT INTO perfume_notes (perfume_id, note_id, note_type, position) VALUES ('p1', 'n2', 'top', 0)`)
	mustExec(t, s.DB, `INSERT INTO perfume_notes (perfume_id, note_id, note_type, position) VALUES ('p1', 'n1', 'heart', 1)`)
	mustExec(t, s.DB, `INSERT INTO perfume_notes (perfume_id, note_id, position) VALUES ('p2', 'n1', 0)`)
}

func TestStorePerfumeList(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	raws, err := s.PerfumeList(context.Background())
	require.NoError(t, err)
	require.Len(t, raws, 3)

	// name ASC; the all-null row sorts first
	assert.Nil(t, raws[0].Name)
	assert.Equal(t, "Ani", *raws[1].Name)
	assert.Equal(t, "Baraonda", *raws[2].Name)

	baraonda := raws[2]
	require.NotNil(t, baraonda.Brand)
	assert.Equal(t, "Nishane", *baraonda.Brand.Name)
	assert.Equal(t, []string{"x.jpg", "y.jpg"}, baraonda.Images)
	assert.Equal(t, "Woody", *baraonda.Family)

	// join rows arrive in position order; descriptions stay unfetched
	require.Len(t, baraonda.Notes, 2)
	assert.Equal(t, "Oud", *baraonda.Notes[0].Note.Name)
	assert.Equal(t, "top", *baraonda.Notes[0].NoteType)
	assert.Equal(t, "Rose", *baraonda.Notes[1].Note.Name)
	assert.Nil(t, baraonda.Notes[1].Note.Description)

	// the all-null row still normalizes to a valid entity
	p := NormalizePerfume(raws[0], ProjectionList)
	assert.Equal(t, "Unnamed Perfume", p.Name)
	assert.Equal(t, "unnamed-perfume", p.Slug)
	assert.Equal(t, "Unknown Brand", p.Brand)
}

func TestStorePerfumeBySlug(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	raw, err := s.PerfumeBySlug(ctx, "baraonda")
	require.NoError(t, err)
	require.NotNil(t, raw)

	assert.Equal(t, "a long story", *raw.LongDescription)
	assert.Equal(t, 2015, *raw.ReleaseYear)
	require.NotNil(t, raw.Brand)
	assert.Equal(t, "b1", *raw.Brand.ID)
	assert.Equal(t, "nishane", *raw.Brand.Slug)

	require.Len(t, raw.Notes, 2)
	assert.Equal(t, "queen of flowers", *raw.Notes[1].Note.Description)

	p := NormalizePerfume(*raw, ProjectionDetail)
	assert.Equal(t, "Unisex", p.Details.Gender)
	assert.Equal(t, "Extrait", p.Details.Concentration)

	// absent slug is a distinct not-found signal, not an error
	missing, err := s.PerfumeBySlug(ctx, "no-such-slug")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreBrandList(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	raws, err := s.BrandList(context.Background())
	require.NoError(t, err)
	require.Len(t, raws, 3)

	// name ASC; null-name brand first
	assert.Nil(t, raws[0].Name)
	assert.Equal(t, "Ajmal", *raws[1].Name)
	assert.Equal(t, "Nishane", *raws[2].Name)

	nishane := NormalizeBrand(raws[2])
	assert.Equal(t, 2, nishane.PerfumeCount) // scalar aggregate from SQL
	assert.True(t, nishane.Featured)
	assert.Equal(t, 2012, nishane.FoundedYear)

	assert.Zero(t, NormalizeBrand(raws[1]).PerfumeCount)
}

func TestStoreBrandBySlug(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)
	ctx := context.Background()

	raw, err := s.BrandBySlug(ctx, "nishane")
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, "Nishane", *raw.Name)

	missing, err := s.BrandBySlug(ctx, "no-such-brand")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStorePerfumesByBrandCapped(t *testing.T) {
	s := newTestStore(t)

	mustExec(t, s.DB, `INSERT INTO brands (id, name, slug) VALUES ('bulk', 'Bulk House', 'bulk-house')`)
	for i := 0; i < 25; i++ {
		mustExec(t, s.DB, `INSERT INTO perfumes (id, name, slug, brand_id) VALUES (?, ?, ?, 'bulk')`,
			fmt.Sprintf("pb%02d", i), fmt.Sprintf("Bulk %02d", i), fmt.Sprintf("bulk-%02d", i))
	}

	raws, err := s.PerfumesByBrand(context.Background(), "bulk")
	require.NoError(t, err)
	require.Len(t, raws, brandPageSize)

	assert.Equal(t, "Bulk 00", *raws[0].Name)
	assert.Equal(t, "Bulk 19", *raws[brandPageSize-1].Name)
	assert.Empty(t, raws[0].Notes) // by-brand projection has no note joins
}
