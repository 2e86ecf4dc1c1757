package media

import (
	"context"

	"github.com/code19m/errx"
	"github.com/skycatalog/media-portal/pkg/logger"
	"github.com/skycatalog/media-portal/pkg/pagination"
	"github.com/skycatalog/media-portal/pkg/pg"
	"github.com/uptrace/bun"
)

// Repository defines the metadata record store contract.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new record keyed by the generated filename.
	// Fails with CodeDuplicateFilename when the filename is already taken.
	// Returns the full persisted record including id and upload date.
	Create(ctx context.Context, filename string, fields Fields) (*ImageMetadata, error)

	// GetByFilename returns the record for filename, or nil when absent.
	GetByFilename(ctx context.Context, filename string) (*ImageMetadata, error)

	// List returns records matching the filters, ordered by upload_date
	// descending with id descending as a deterministic tie-break.
	List(ctx context.Context, filters Filters, page pagination.Params) ([]ImageMetadata, error)

	// Update replaces the seven content fields of the record for filename.
	// Returns nil when no record exists.
	Update(ctx context.Context, filename string, fields Fields) (*ImageMetadata, error)

	// Delete removes the record for filename, reporting whether a deletion
	// occurred.
	Delete(ctx context.Context, filename string) (bool, error)
}

// PgRepo provides CRUD operations for image metadata using the bun ORM.
type PgRepo struct {
	db  *bun.DB
	log logger.Logger
}

var _ Repository = (*PgRepo)(nil)

// NewPgRepo creates a repository bound to the given database handle.
func NewPgRepo(db *bun.DB, log logger.Logger) *PgRepo {
	return &PgRepo{
		db:  db,
		log: log.Named("media.repo"),
	}
}

func (r *PgRepo) Create(ctx context.Context, filename string, fields Fields) (*ImageMetadata, error) {
	m := &ImageMetadata{Filename: filename}
	fields.ApplyTo(m)

	q := r.db.NewInsert().Model(m).Returning("*")
	_, err := q.Exec(ctx)
	if err != nil {
		if pg.ConstraintName(err) == filenameUniqueConstraint || pg.IsConflict(err) {
			return nil, errx.New(
				"image metadata already exists for filename",
				errx.WithCode(CodeDuplicateFilename),
				errx.WithType(errx.T_Conflict),
				errx.WithDetails(pg.GetPgErrorDetails(err, q)),
			)
		}
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return m, nil
}

func (r *PgRepo) GetByFilename(ctx context.Context, filename string) (*ImageMetadata, error) {
	var records = make([]ImageMetadata, 0, 1)
	q := r.db.NewSelect().Model(&records).Where("filename = ?", filename).Limit(1)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(records) == 0 {
		return nil, nil //nolint:nilnil // absence is not an error for lookups
	}

	return &records[0], nil
}

func (r *PgRepo) List(ctx context.Context, filters Filters, page pagination.Params) ([]ImageMetadata, error) {
	page.Normalize()

	q := r.db.NewSelect().
		Model((*ImageMetadata)(nil)).
		OrderExpr("upload_date DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset)
	q = filters.apply(q)

	rows, err := q.Rows(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	// Rows are scanned one by one so that a single corrupted record is
	// skipped and logged instead of failing the whole listing.
	records := make([]ImageMetadata, 0)
	for rows.Next() {
		var m ImageMetadata
		if err := r.db.ScanRow(ctx, rows, &m); err != nil {
			r.log.WithContext(ctx).
				With("scan_error", err.Error()).
				Warn("skipping unreadable image metadata row")
			continue
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return records, nil
}

func (r *PgRepo) Update(ctx context.Context, filename string, fields Fields) (*ImageMetadata, error) {
	m := &ImageMetadata{Filename: filename}
	fields.ApplyTo(m)

	q := r.db.NewUpdate().
		Model(m).
		Column(
			"source",
			"copyright",
			"dataset_release",
			"description",
			"data_processing_stages",
			"coordinates",
			"is_public",
			"updated_at",
		).
		Where("filename = ?", filename).
		Returning("*")

	result, err := q.Exec(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}
	if rowsAffected == 0 {
		return nil, nil //nolint:nilnil // absence is not an error for updates
	}

	return m, nil
}

func (r *PgRepo) Delete(ctx context.Context, filename string) (bool, error) {
	q := r.db.NewDelete().
		Model((*ImageMetadata)(nil)).
		Where("filename = ?", filename)

	result, err := q.Exec(ctx)
	if err != nil {
		return false, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return rowsAffected > 0, nil
}
