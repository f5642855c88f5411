package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"scenthub/pkg/database"
)

func main() {
	var (
		brandsIn       = flag.String("brands", "data/brands.csv", "input CSV path for brands")
		perfumesIn     = flag.String("perfumes", "data/perfumes.csv", "input CSV path for perfumes")
		notesIn        = flag.String("notes", "data/notes.csv", "input CSV path for notes")
		perfumeNotesIn = flag.String("perfume-notes", "data/perfume_notes.csv", "input CSV path for perfume-note join rows")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := importBrands(ctx, db, *brandsIn); err != nil {
		log.Fatalf("import brands failed: %v", err)
	}
	if err := importPerfumes(ctx, db, *perfumesIn); err != nil {
		log.Fatalf("import perfumes failed: %v", err)
	}
	if err := importNotes(ctx, db, *notesIn); err != nil {
		log.Fatalf("import notes failed: %v", err)
	}
	if err := importPerfumeNotes(ctx, db, *perfumeNotesIn); err != nil {
		log.Fatalf("import perfume notes failed: %v", err)
	}

	log.Printf("✅ imported catalog from %s, %s, %s and %s", *brandsIn, *perfumesIn, *notesIn, *perfumeNotesIn)
}

func importBrands(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO brands (id, name, slug, description, long_description, logo_url,
		                    banner_url, founded_year, headquarters, category, is_featured)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name,
		  slug = excluded.slug,
		  description = excluded.description,
		  long_description = excluded.long_description,
		  logo_url = excluded.logo_url,
		  banner_url = excluded.banner_url,
		  founded_year = excluded.founded_year,
		  headquarters = excluded.headquarters,
		  category = excluded.category,
		  is_featured = excluded.is_featured
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		id := valueAt(header, row, "id")
		if id == "" {
			continue
		}

		foundedYear, err := parseNullInt(valueAt(header, row, "founded_year"))
		if err != nil {
			return fmt.Errorf("parse founded_year for %s: %w", id, err)
		}

		if _, err := stmt.ExecContext(
			ctx,
			id,
			nullString(valueAt(header, row, "name")),
			nullString(valueAt(header, row, "slug")),
			nullString(valueAt(header, row, "description")),
			nullString(valueAt(header, row, "long_description")),
			nullString(valueAt(header, row, "logo_url")),
			nullString(valueAt(header, row, "banner_url")),
			foundedYear,
			nullString(valueAt(header, row, "headquarters")),
			nullString(valueAt(header, row, "category")),
			parseBoolFlag(valueAt(header, row, "is_featured")),
		); err != nil {
			return err
		}
	}

	return nil
}

func importPerfumes(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO perfumes (id, name, slug, brand_id, description, long_description, images,
		                      details_gender, details_family, details_concentration,
		                      details_release_year, details_longevity, details_sillage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name,
		  slug = excluded.slug,
		  brand_id = excluded.brand_id,
		  description = excluded.description,
		  long_description = excluded.long_description,
		  images = excluded.images,
		  details_gender = excluded.details_gender,
		  details_family = excluded.details_family,
		  details_concentration = excluded.details_concentration,
		  details_release_year = excluded.details_release_year,
		  details_longevity = excluded.details_longevity,
		  details_sillage = excluded.details_sillage
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		id := valueAt(header, row, "id")
		if id == "" {
			continue
		}

		releaseYear, err := parseNullInt(valueAt(header, row, "details_release_year"))
		if err != nil {
			return fmt.Errorf("parse details_release_year for %s: %w", id, err)
		}

		if _, err := stmt.ExecContext(
			ctx,
			id,
			nullString(valueAt(header, row, "name")),
			nullString(valueAt(header, row, "slug")),
			nullString(valueAt(header, row, "brand_id")),
			nullString(valueAt(header, row, "description")),
			nullString(valueAt(header, row, "long_description")),
			nullString(valueAt(header, row, "images")),
			nullString(valueAt(header, row, "details_gender")),
			nullString(valueAt(header, row, "details_family")),
			nullString(valueAt(header, row, "details_concentration")),
			releaseYear,
			nullString(valueAt(header, row, "details_longevity")),
			nullString(valueAt(header, row, "details_sillage")),
		); err != nil {
			return err
		}
	}

	return nil
}

func importNotes(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO notes (id, name, description)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name,
		  description = excluded.description
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		id := valueAt(header, row, "id")
		if id == "" {
			continue
		}

		if _, err := stmt.ExecContext(
			ctx,
			id,
			nullString(valueAt(header, row, "name")),
			nullString(valueAt(header, row, "description")),
		); err != nil {
			return err
		}
	}

	return nil
}

func importPerfumeNotes(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO perfume_notes (perfume_id, note_id, note_type, position)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(perfume_id, note_id, note_type) DO UPDATE SET
		  position = excluded.position
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		perfumeID := valueAt(header, row, "perfume_id")
		noteID := valueAt(header, row, "note_id")
		if perfumeID == "" || noteID == "" {
			continue
		}

		position, err := parseNullInt(valueAt(header, row, "position"))
		if err != nil {
			return fmt.Errorf("parse position for %s/%s: %w", perfumeID, noteID, err)
		}

		if _, err := stmt.ExecContext(
			ctx,
			perfumeID,
			noteID,
			nullString(valueAt(header, row, "note_type")),
			position,
		); err != nil {
			return err
		}
	}

	return nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func parseNullInt(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// parseBoolFlag maps common truthy spellings to 1/0 for sqlite.
func parseBoolFlag(s string) int {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return 1
	default:
		return 0
	}
}
