package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres stores values in the blobs table created by database.EnsureSchema.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string

	query := `SELECT value FROM blobs WHERE key = $1`
	row := p.db.QueryRowContext(ctx, query, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("scan: %w", err)
	}

	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO blobs (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}
