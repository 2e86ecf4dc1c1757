package auth

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/skycatalog/media-portal/pkg/logger"
)

func newTestUserStore(t *testing.T) *PgUserStore {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, CreateSchema(t.Context(), db))

	log, err := logger.New(logger.Config{Disable: true})
	require.NoError(t, err)

	return NewPgUserStore(db, log)
}

func TestRecordLoginCreatesAccount(t *testing.T) {
	store := newTestUserStore(t)

	acc, err := store.RecordLogin(t.Context(), User{
		Username:    "jane.doe",
		Email:       "jane@example.org",
		DisplayName: "Jane Doe",
	})
	require.NoError(t, err)
	require.NotNil(t, acc)

	assert.NotZero(t, acc.ID)
	assert.Equal(t, "jane.doe", acc.Username)
	assert.Equal(t, "jane@example.org", acc.Email)
	assert.Equal(t, acc.CreatedAt, acc.LastLogin)
}

func TestRecordLoginRefreshesExistingAccount(t *testing.T) {
	store := newTestUserStore(t)

	first := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return first }

	created, err := store.RecordLogin(t.Context(), User{
		Username: "jane.doe",
		Email:    "jane@example.org",
	})
	require.NoError(t, err)

	second := first.Add(48 * time.Hour)
	store.now = func() time.Time { return second }

	refreshed, err := store.RecordLogin(t.Context(), User{
		Username:    "jane.doe",
		Email:       "jane.doe@example.org",
		DisplayName: "Jane Doe",
	})
	require.NoError(t, err)

	// Same row: the first login fixes id and created_at for good.
	assert.Equal(t, created.ID, refreshed.ID)
	assert.True(t, refreshed.CreatedAt.Equal(first))

	// Profile attributes and last_login follow the latest login.
	assert.True(t, refreshed.LastLogin.Equal(second))
	assert.Equal(t, "jane.doe@example.org", refreshed.Email)
	assert.Equal(t, "Jane Doe", refreshed.DisplayName)
}

func TestGetByUsernameAbsent(t *testing.T) {
	store := newTestUserStore(t)

	acc, err := store.GetByUsername(t.Context(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, acc)
}

func TestGetByUsernameReturnsLedgerEntry(t *testing.T) {
	store := newTestUserStore(t)

	_, err := store.RecordLogin(t.Context(), User{Username: "jane.doe", Surname: "Doe"})
	require.NoError(t, err)

	acc, err := store.GetByUsername(t.Context(), "jane.doe")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "Doe", acc.Surname)
}
