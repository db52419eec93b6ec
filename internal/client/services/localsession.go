package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/dbx"
)

// LocalSession is the session token held on this machine. Its expiry is
// advisory; the backend remains the judge of validity.
type LocalSession struct {
	Token     string
	ExpiresAt time.Time
}

func (s LocalSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionStore keeps exactly one session token in local durable storage.
type SessionStore interface {
	Save(ctx context.Context, token string, expiresAt time.Time) error
	// Load returns common.ErrNoSession when nothing is stored.
	Load(ctx context.Context) (*LocalSession, error)
	Clear(ctx context.Context) error
}

type localSessionStore struct {
	db *sql.DB
}

func NewLocalSessionStore(db *sql.DB) SessionStore {
	return &localSessionStore{db: db}
}

// Save writes token and expiry in one transaction, replacing any previous
// session.
func (s *localSessionStore) Save(ctx context.Context, token string, expiresAt time.Time) error {
	exp := expiresAt.UTC().Truncate(time.Second).Format(time.RFC3339)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionExpiresAtKey, []byte(exp))
	})
}

func (s *localSessionStore) Load(ctx context.Context) (*LocalSession, error) {
	values, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	token := string(values[common.SessionTokenKey])
	if token == "" {
		return nil, common.ErrNoSession
	}

	exp, err := time.Parse(time.RFC3339, string(values[common.SessionExpiresAtKey]))
	if err != nil {
		return nil, fmt.Errorf("%w: bad stored expiry: %v", common.ErrNoSession, err)
	}
	return &LocalSession{Token: token, ExpiresAt: exp}, nil
}

// Clear forgets the local session (logout).
func (s *localSessionStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Clear(ctx)
}
