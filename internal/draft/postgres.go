package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS onboarding_drafts (
	draft_key  TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// PostgresStore keeps drafts in the onboarding_drafts table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the drafts table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create onboarding_drafts: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, userID string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM onboarding_drafts WHERE draft_key = $1`,
		Key(userID),
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select draft: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, userID string, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO onboarding_drafts(draft_key, data, updated_at)
		VALUES($1, $2, now())
		ON CONFLICT (draft_key) DO UPDATE
		SET data = EXCLUDED.data,
			updated_at = now()
	`, Key(userID), data)
	if err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM onboarding_drafts WHERE draft_key = $1`, Key(userID)); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
