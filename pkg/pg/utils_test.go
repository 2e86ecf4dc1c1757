// Package pg_test contains tests for the pg helper functions.
package pg_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/skycatalog/media-portal/pkg/pg"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		ConstraintName: constraint,
	}
}

func TestIsConflict(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "pg unique violation",
			err:      uniqueViolation("image_metadata_filename_key"),
			expected: true,
		},
		{
			name:     "wrapped pg unique violation",
			err:      fmt.Errorf("insert: %w", uniqueViolation("x")),
			expected: true,
		},
		{
			name:     "other pg error",
			err:      &pgconn.PgError{Code: "23503"},
			expected: false,
		},
		{
			name:     "sqlite unique violation message",
			err:      errors.New("UNIQUE constraint failed: image_metadata.filename"),
			expected: true,
		},
		{
			name:     "unrelated error",
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pg.IsConflict(tt.err))
		})
	}
}

func TestConstraintName(t *testing.T) {
	assert.Equal(t, "image_metadata_filename_key",
		pg.ConstraintName(uniqueViolation("image_metadata_filename_key")))
	assert.Empty(t, pg.ConstraintName(&pgconn.PgError{Code: "23503", ConstraintName: "fk"}))
	assert.Empty(t, pg.ConstraintName(errors.New("not a pg error")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, pg.IsNotFound(sql.ErrNoRows))
	assert.True(t, pg.IsNotFound(fmt.Errorf("scan: %w", sql.ErrNoRows)))
	assert.False(t, pg.IsNotFound(errors.New("other")))
}

func TestGetPgErrorDetails(t *testing.T) {
	details := pg.GetPgErrorDetails(uniqueViolation("image_metadata_filename_key"), nil)

	assert.Equal(t, "23505", details["pg.code"])
	assert.Equal(t, "image_metadata_filename_key", details["pg.constraint"])
	assert.NotContains(t, details, "query")

	var _ errx.D = details
}
