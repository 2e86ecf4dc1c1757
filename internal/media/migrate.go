package media

import (
	"context"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"
)

// CreateSchema creates the image_metadata table and its indexes when they do
// not exist yet. It is called once at process start, before the HTTP server
// accepts requests.
//
// The DDL is generated from the model so the same call works against
// PostgreSQL in production and SQLite in tests. PostgreSQL derives the
// filename uniqueness constraint name (image_metadata_filename_key) that the
// repository maps to CodeDuplicateFilename.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*ImageMetadata)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errx.Wrap(err)
	}

	// Listing always orders by upload_date descending.
	_, err = db.NewCreateIndex().
		Model((*ImageMetadata)(nil)).
		Index("image_metadata_upload_date_idx").
		Column("upload_date").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errx.Wrap(err)
	}

	return nil
}
