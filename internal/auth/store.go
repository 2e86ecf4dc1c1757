package auth

import (
	"context"
	"time"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/skycatalog/media-portal/pkg/logger"
	"github.com/skycatalog/media-portal/pkg/pg"
)

// Account is a durable ledger entry for a user who has logged in at least
// once. created_at is fixed at the first login; last_login and the profile
// attributes are refreshed on every login.
type Account struct {
	bun.BaseModel `bun:"table:portal_user,alias:pu"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Username    string    `bun:"username,unique,notnull"`
	Email       string    `bun:"email"`
	GivenName   string    `bun:"given_name"`
	Surname     string    `bun:"surname"`
	DisplayName string    `bun:"display_name"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	LastLogin   time.Time `bun:"last_login,notnull"`
}

// UserStore persists the login ledger.
// Implementations must be safe for concurrent use.
type UserStore interface {
	// RecordLogin upserts the account for user and returns the persisted
	// row. A first login creates the account; later logins refresh the
	// profile attributes and move last_login forward.
	RecordLogin(ctx context.Context, user User) (*Account, error)

	// GetByUsername returns the account for username, or nil when the user
	// has never logged in.
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

// PgUserStore keeps the login ledger in the relational database.
type PgUserStore struct {
	db  *bun.DB
	log logger.Logger
	now func() time.Time
}

var _ UserStore = (*PgUserStore)(nil)

// NewPgUserStore creates a user store bound to the given database handle.
func NewPgUserStore(db *bun.DB, log logger.Logger) *PgUserStore {
	return &PgUserStore{
		db:  db,
		log: log.Named("auth.users"),
		now: time.Now,
	}
}

func (s *PgUserStore) RecordLogin(ctx context.Context, user User) (*Account, error) {
	now := s.now()
	acc := &Account{
		Username:    user.Username,
		Email:       user.Email,
		GivenName:   user.GivenName,
		Surname:     user.Surname,
		DisplayName: user.DisplayName,
		CreatedAt:   now,
		LastLogin:   now,
	}

	q := s.db.NewInsert().Model(acc).
		On("CONFLICT (username) DO UPDATE").
		Set("email = EXCLUDED.email").
		Set("given_name = EXCLUDED.given_name").
		Set("surname = EXCLUDED.surname").
		Set("display_name = EXCLUDED.display_name").
		Set("last_login = EXCLUDED.last_login").
		Returning("*")

	_, err := q.Exec(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	return acc, nil
}

func (s *PgUserStore) GetByUsername(ctx context.Context, username string) (*Account, error) {
	var accounts = make([]Account, 0, 1)
	q := s.db.NewSelect().Model(&accounts).Where("username = ?", username).Limit(1)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(pg.GetPgErrorDetails(err, q)))
	}

	if len(accounts) == 0 {
		return nil, nil
	}

	return &accounts[0], nil
}

// CreateSchema creates the portal_user table when it does not exist yet.
// Called once at process start, alongside the media schema.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*Account)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errx.Wrap(err)
	}

	return nil
}
