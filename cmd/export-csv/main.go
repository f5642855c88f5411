package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"scenthub/pkg/database"
)

func main() {
	var (
		brandsOut       = flag.String("brands", "data/brands.csv", "output CSV path for brands")
		perfumesOut     = flag.String("perfumes", "data/perfumes.csv", "output CSV path for perfumes")
		notesOut        = flag.String("notes", "data/notes.csv", "output CSV path for notes")
		perfumeNotesOut = flag.String("perfume-notes", "data/perfume_notes.csv", "output CSV path for perfume-note join rows")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportBrands(ctx, db, *brandsOut); err != nil {
		log.Fatalf("export brands failed: %v", err)
	}
	if err := exportPerfumes(ctx, db, *perfumesOut); err != nil {
		log.Fatalf("export perfumes failed: %v", err)
	}
	if err := exportNotes(ctx, db, *notesOut); err != nil {
		log.Fatalf("export notes failed: %v", err)
	}
	if err := exportPerfumeNotes(ctx, db, *perfumeNotesOut); err != nil {
		log.Fatalf("export perfume notes failed: %v", err)
	}

	log.Printf("✅ exported catalog to %s, %s, %s and %s", *brandsOut, *perfumesOut, *notesOut, *perfumeNotesOut)
}

func exportBrands(ctx context.Context, db *sql.DB, outPath string) error {
	w, f, err := createWriter(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write([]string{
		"id", "name", "slug", "description", "long_description", "logo_url",
		"banner_url", "founded_year", "headquarters", "category", "is_featured",
	}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, slug, description, long_description, logo_url,
		       banner_url, founded_year, headquarters, category, is_featured
		FROM brands
		ORDER BY name
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                                        string
			name, slug, description, longDescription sql.NullString
			logo, banner, headquarters, category     sql.NullString
			foundedYear                               sql.NullInt64
			featured                                  sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &slug, &description, &longDescription,
			&logo, &banner, &foundedYear, &headquarters, &category, &featured); err != nil {
			return err
		}

		if err := w.Write([]string{
			id, name.String, slug.String, description.String, longDescription.String,
			logo.String, banner.String, intField(foundedYear), headquarters.String,
			category.String, intField(featured),
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportPerfumes(ctx context.Context, db *sql.DB, outPath string) error {
	w, f, err := createWriter(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write([]string{
		"id", "name", "slug", "brand_id", "description", "long_description", "images",
		"details_gender", "details_family", "details_concentration",
		"details_release_year", "details_longevity", "details_sillage",
	}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, slug, brand_id, description, long_description, images,
		       details_gender, details_family, details_concentration,
		       details_release_year, details_longevity, details_sillage
		FROM perfumes
		ORDER BY name
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                                         string
			name, slug, brandID, description, longDesc sql.NullString
			images, gender, family, concentration      sql.NullString
			longevity, sillage                         sql.NullString
			releaseYear                                sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &slug, &brandID, &description, &longDesc,
			&images, &gender, &family, &concentration, &releaseYear, &longevity, &sillage); err != nil {
			return err
		}

		if err := w.Write([]string{
			id, name.String, slug.String, brandID.String, description.String,
			longDesc.String, images.String, gender.String, family.String,
			concentration.String, intField(releaseYear), longevity.String, sillage.String,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportNotes(ctx context.Context, db *sql.DB, outPath string) error {
	w, f, err := createWriter(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write([]string{"id", "name", "description"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, name, description FROM notes ORDER BY name`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                string
			name, description sql.NullString
		)
		if err := rows.Scan(&id, &name, &description); err != nil {
			return err
		}
		if err := w.Write([]string{id, name.String, description.String}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportPerfumeNotes(ctx context.Context, db *sql.DB, outPath string) error {
	w, f, err := createWriter(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write([]string{"perfume_id", "note_id", "note_type", "position"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT perfume_id, note_id, note_type, position
		FROM perfume_notes
		ORDER BY perfume_id, position
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			perfumeID, noteID string
			noteType          sql.NullString
			position          sql.NullInt64
		)
		if err := rows.Scan(&perfumeID, &noteID, &noteType, &position); err != nil {
			return err
		}
		if err := w.Write([]string{perfumeID, noteID, noteType.String, intField(position)}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func createWriter(outPath string) (*csv.Writer, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewWriter(f), f, nil
}

func intField(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}
