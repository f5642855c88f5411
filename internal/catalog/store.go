package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// brandPageSize caps the perfumes fetched for one brand's page.
const brandPageSize = 20

// Store fetches raw catalog records from the relational database.
// Nullable columns come back as pointers; all defaulting belongs to the
// normalizer, never to the store.
type Store struct {
	DB  *sql.DB
	Log *logrus.Logger
}

func NewStore(db *sql.DB, log *logrus.Logger) *Store {
	return &Store{DB: db, Log: log}
}

// PerfumeList returns every perfume in the list projection: base fields,
// joined brand name, joined note names and types.
func (s *Store) PerfumeList(ctx context.Context) ([]RawPerfume, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT p.id, p.name, p.slug, p.description, p.images, p.details_family, b.name
		FROM perfumes p
		LEFT JOIN brands b ON b.id = p.brand_id
		ORDER BY p.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("perfume list query: %w", err)
	}
	defer rows.Close()

	var out []RawPerfume
	for rows.Next() {
		p, err := s.scanListPerfume(rows)
		if err != nil {
			return nil, fmt.Errorf("perfume list scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("perfume list rows: %w", err)
	}

	if err := s.attachNotes(ctx, out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// PerfumeBySlug returns one perfume in the detail projection, or
// (nil, nil) when no row matches the slug.
func (s *Store) PerfumeBySlug(ctx context.Context, slug string) (*RawPerfume, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.slug, p.description, p.long_description, p.images,
		       p.details_gender, p.details_family, p.details_concentration,
		       p.details_release_year, p.details_longevity, p.details_sillage,
		       b.id, b.name, b.slug
		FROM perfumes p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.slug = ?
	`, slug)

	var (
		id, name, pslug, description, longDescription, images sql.NullString
		gender, family, concentration, longevity, sillage     sql.NullString
		releaseYear                                           sql.NullInt64
		brandID, brandName, brandSlug                         sql.NullString
	)
	if err := row.Scan(
		&id, &name, &pslug, &description, &longDescription, &images,
		&gender, &family, &concentration, &releaseYear, &longevity, &sillage,
		&brandID, &brandName, &brandSlug,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("perfume detail scan: %w", err)
	}

	p := RawPerfume{
		ID:              nullStr(id),
		Name:            nullStr(name),
		Slug:            nullStr(pslug),
		Description:     nullStr(description),
		LongDescription: nullStr(longDescription),
		Images:          s.decodeImages(images),
		Gender:          nullStr(gender),
		Family:          nullStr(family),
		Concentration:   nullStr(concentration),
		ReleaseYear:     nullInt(releaseYear),
		Longevity:       nullStr(longevity),
		Sillage:         nullStr(sillage),
	}
	if brandID.Valid || brandName.Valid || brandSlug.Valid {
		p.Brand = &RawBrandRef{
			ID:   nullStr(brandID),
			Name: nullStr(brandName),
			Slug: nullStr(brandSlug),
		}
	}

	list := []RawPerfume{p}
	if err := s.attachNotes(ctx, list, true); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// PerfumesByBrand returns the brand's perfumes in name order, capped at
// brandPageSize. This projection carries no note joins.
func (s *Store) PerfumesByBrand(ctx context.Context, brandID string) ([]RawPerfume, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT p.id, p.name, p.slug, p.description, p.images, p.details_family, b.name
		FROM perfumes p
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE p.brand_id = ?
		ORDER BY p.name ASC
		LIMIT ?
	`, brandID, brandPageSize)
	if err != nil {
		return nil, fmt.Errorf("perfumes by brand query: %w", err)
	}
	defer rows.Close()

	var out []RawPerfume
	for rows.Next() {
		p, err := s.scanListPerfume(rows)
		if err != nil {
			return nil, fmt.Errorf("perfumes by brand scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("perfumes by brand rows: %w", err)
	}
	return out, nil
}

const brandSelect = `
	SELECT b.id, b.name, b.slug, b.description, b.long_description,
	       b.logo_url, b.banner_url, b.founded_year, b.headquarters,
	       b.category, b.is_featured,
	       (SELECT COUNT(*) FROM perfumes p WHERE p.brand_id = b.id)
	FROM brands b
`

// BrandList returns every brand with its perfume-count aggregate.
func (s *Store) BrandList(ctx context.Context) ([]RawBrand, error) {
	rows, err := s.DB.QueryContext(ctx, brandSelect+` ORDER BY b.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("brand list query: %w", err)
	}
	defer rows.Close()

	var out []RawBrand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("brand list scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("brand list rows: %w", err)
	}
	return out, nil
}

// BrandBySlug returns one brand, or (nil, nil) when absent.
func (s *Store) BrandBySlug(ctx context.Context, slug string) (*RawBrand, error) {
	row := s.DB.QueryRowContext(ctx, brandSelect+` WHERE b.slug = ?`, slug)

	b, err := scanBrand(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("brand detail scan: %w", err)
	}
	return &b, nil
}

// attachNotes loads the note join rows for the given perfumes, in source
// (position) order. withDescriptions is true only for the detail
// projection.
func (s *Store) attachNotes(ctx context.Context, perfumes []RawPerfume, withDescriptions bool) error {
	if len(perfumes) == 0 {
		return nil
	}

	byID := make(map[string]*RawPerfume, len(perfumes))
	args := make([]any, 0, len(perfumes))
	placeholders := make([]string, 0, len(perfumes))
	for i := range perfumes {
		if perfumes[i].ID == nil {
			continue
		}
		byID[*perfumes[i].ID] = &perfumes[i]
		args = append(args, *perfumes[i].ID)
		placeholders = append(placeholders, "?")
	}
	if len(args) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		SELECT pn.perfume_id, pn.note_type, n.id, n.name, n.description
		FROM perfume_notes pn
		LEFT JOIN notes n ON n.id = pn.note_id
		WHERE pn.perfume_id IN (%s)
		ORDER BY pn.perfume_id, pn.position
	`, strings.Join(placeholders, ", "))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("perfume notes query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			perfumeID                        string
			noteType, noteID, noteName, desc sql.NullString
		)
		if err := rows.Scan(&perfumeID, &noteType, &noteID, &noteName, &desc); err != nil {
			return fmt.Errorf("perfume notes scan: %w", err)
		}

		p, ok := byID[perfumeID]
		if !ok {
			continue
		}

		row := RawPerfumeNote{NoteType: nullStr(noteType)}
		if noteID.Valid || noteName.Valid || desc.Valid {
			ref := &RawNoteRef{ID: nullStr(noteID), Name: nullStr(noteName)}
			if withDescriptions {
				ref.Description = nullStr(desc)
			}
			row.Note = ref
		}
		p.Notes = append(p.Notes, row)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("perfume notes rows: %w", err)
	}
	return nil
}

func (s *Store) scanListPerfume(rows *sql.Rows) (RawPerfume, error) {
	var id, name, slug, description, images, family, brandName sql.NullString

	if err := rows.Scan(&id, &name, &slug, &description, &images, &family, &brandName); err != nil {
		return RawPerfume{}, err
	}

	p := RawPerfume{
		ID:          nullStr(id),
		Name:        nullStr(name),
		Slug:        nullStr(slug),
		Description: nullStr(description),
		Images:      s.decodeImages(images),
		Family:      nullStr(family),
	}
	if brandName.Valid {
		n := brandName.String
		p.Brand = &RawBrandRef{Name: &n}
	}
	return p, nil
}

func scanBrand(row interface{ Scan(dest ...any) error }) (RawBrand, error) {
	var (
		id, name, slug, description, longDescription sql.NullString
		logo, banner, headquarters, category         sql.NullString
		foundedYear                                  sql.NullInt64
		featured                                     sql.NullBool
		count                                        sql.NullInt64
	)
	if err := row.Scan(
		&id, &name, &slug, &description, &longDescription,
		&logo, &banner, &foundedYear, &headquarters, &category,
		&featured, &count,
	); err != nil {
		return RawBrand{}, err
	}

	b := RawBrand{
		ID:              nullStr(id),
		Name:            nullStr(name),
		Slug:            nullStr(slug),
		Description:     nullStr(description),
		LongDescription: nullStr(longDescription),
		Logo:            nullStr(logo),
		Banner:          nullStr(banner),
		FoundedYear:     nullInt(foundedYear),
		Headquarters:    nullStr(headquarters),
		Category:        nullStr(category),
	}
	if featured.Valid {
		v := featured.Bool
		b.Featured = &v
	}
	if count.Valid {
		// the scalar aggregate shape; the normalizer also accepts
		// the array-of-one form used by JSON sources
		b.PerfumeCount = count.Int64
	}
	return b, nil
}

// decodeImages unwraps the JSON-array-as-text images column. Malformed
// JSON degrades to no images.
func (s *Store) decodeImages(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return nil
	}
	var imgs []string
	if err := json.Unmarshal([]byte(v.String), &imgs); err != nil {
		s.Log.WithError(err).Warn("malformed images column, ignoring")
		return nil
	}
	return imgs
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
