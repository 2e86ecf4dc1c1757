// Package media_test contains tests for the media repository. They run
// against an in-memory SQLite database through the same bun query paths the
// PostgreSQL deployment uses.
package media_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/code19m/errx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/skycatalog/media-portal/internal/media"
	"github.com/skycatalog/media-portal/pkg/logger"
	"github.com/skycatalog/media-portal/pkg/pagination"
)

func newTestRepo(t *testing.T) *media.PgRepo {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, media.CreateSchema(t.Context(), db))

	log, err := logger.New(logger.Config{Disable: true})
	require.NoError(t, err)

	return media.NewPgRepo(db, log)
}

func sampleFields() media.Fields {
	return media.Fields{
		Source:               "Euclid",
		Copyright:            "ESA",
		DatasetRelease:       "Q1",
		Description:          "deep field tile",
		DataProcessingStages: "raw,calibrated",
		Coordinates:          "149.1 2.2",
		IsPublic:             true,
	}
}

func TestCreateAndGetByFilename(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Create(t.Context(), "a.png", sampleFields())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.UploadDate.IsZero())
	assert.True(t, created.UpdatedAt.IsZero(), "updated_at must stay unset until the first edit")

	got, err := repo.GetByFilename(t.Context(), "a.png")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Euclid", got.Source)
}

func TestGetByFilenameAbsent(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetByFilename(t.Context(), "missing.png")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateDuplicateFilename(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Create(t.Context(), "a.png", sampleFields())
	require.NoError(t, err)

	_, err = repo.Create(t.Context(), "a.png", sampleFields())
	require.Error(t, err)
	assert.Equal(t, media.CodeDuplicateFilename, errx.AsErrorX(err).Code())
	assert.Equal(t, errx.T_Conflict, errx.AsErrorX(err).Type())
}

func TestListOrderingAndPagination(t *testing.T) {
	repo := newTestRepo(t)

	// Same upload date for b and c forces the id tie-break.
	names := []string{"a.png", "b.png", "c.png"}
	for _, name := range names {
		_, err := repo.Create(t.Context(), name, sampleFields())
		require.NoError(t, err)
	}

	records, err := repo.List(t.Context(), media.Filters{}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	// upload_date desc, id desc: later inserts first.
	ids := lo.Map(records, func(m media.ImageMetadata, _ int) int64 { return m.ID })
	assert.IsDecreasing(t, ids)

	page, err := repo.List(t.Context(), media.Filters{}, pagination.Params{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)
}

func TestListFilters(t *testing.T) {
	repo := newTestRepo(t)

	public := sampleFields()
	_, err := repo.Create(t.Context(), "pub.png", public)
	require.NoError(t, err)

	private := sampleFields()
	private.Source = "Test Source"
	private.IsPublic = false
	_, err = repo.Create(t.Context(), "priv.png", private)
	require.NoError(t, err)

	percent := sampleFields()
	percent.Description = "coverage 50% done"
	percent.Coordinates = "10_20"
	_, err = repo.Create(t.Context(), "pct.png", percent)
	require.NoError(t, err)

	tests := []struct {
		name     string
		filters  media.Filters
		expected []string
	}{
		{
			name:     "no filters matches all",
			filters:  media.Filters{},
			expected: []string{"pub.png", "priv.png", "pct.png"},
		},
		{
			name:     "substring match is case-insensitive",
			filters:  media.Filters{Source: lo.ToPtr("test")},
			expected: []string{"priv.png"},
		},
		{
			name:     "exact is_public match",
			filters:  media.Filters{IsPublic: lo.ToPtr(true)},
			expected: []string{"pub.png", "pct.png"},
		},
		{
			name:     "percent sign matches literally",
			filters:  media.Filters{Description: lo.ToPtr("50%")},
			expected: []string{"pct.png"},
		},
		{
			name:     "lone percent is not a wildcard",
			filters:  media.Filters{Description: lo.ToPtr("%")},
			expected: []string{"pct.png"},
		},
		{
			name:     "underscore matches literally",
			filters:  media.Filters{Coordinates: lo.ToPtr("0_2")},
			expected: []string{"pct.png"},
		},
		{
			name: "filters combine with AND",
			filters: media.Filters{
				Copyright: lo.ToPtr("esa"),
				IsPublic:  lo.ToPtr(false),
			},
			expected: []string{"priv.png"},
		},
		{
			name:     "non-matching substring",
			filters:  media.Filters{Description: lo.ToPtr("nebula")},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := repo.List(t.Context(), tt.filters, pagination.Params{})
			require.NoError(t, err)

			names := lo.Map(records, func(m media.ImageMetadata, _ int) string { return m.Filename })
			assert.ElementsMatch(t, tt.expected, names)
		})
	}
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Create(t.Context(), "a.png", sampleFields())
	require.NoError(t, err)

	edited := sampleFields()
	edited.Description = "reprocessed tile"
	edited.IsPublic = false

	updated, err := repo.Update(t.Context(), "a.png", edited)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "reprocessed tile", updated.Description)
	assert.False(t, updated.IsPublic)
	assert.False(t, updated.UpdatedAt.IsZero())

	// upload_date is immutable.
	got, err := repo.GetByFilename(t.Context(), "a.png")
	require.NoError(t, err)
	assert.WithinDuration(t, created.UploadDate, got.UploadDate, time.Second)
}

func TestUpdateAbsent(t *testing.T) {
	repo := newTestRepo(t)

	updated, err := repo.Update(t.Context(), "missing.png", sampleFields())
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Create(t.Context(), "a.png", sampleFields())
	require.NoError(t, err)

	deleted, err := repo.Delete(t.Context(), "a.png")
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetByFilename(t.Context(), "a.png")
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = repo.Delete(t.Context(), "a.png")
	require.NoError(t, err)
	assert.False(t, deleted)
}
