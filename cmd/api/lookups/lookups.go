package lookups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	KindForward  = "forward"
	KindReverse  = "reverse"
	KindLocation = "location"
)

// Lookup is one geocoding request served by the API. Only what was asked
// and how it went is kept; results are never stored.
type Lookup struct {
	ID        int64     `db:"id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	Dataset   string    `db:"dataset" json:"dataset"`
	Query     string    `db:"query" json:"query"`
	Status    int       `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Repository interface {
	Record(ctx context.Context, l Lookup) error
	ListRecent(ctx context.Context, limit int) ([]Lookup, error)
}

type pgRepo struct {
	db *sqlx.DB
}

var _ Repository = (*pgRepo)(nil)

func NewPgRepository(db *sql.DB) *pgRepo {
	return &pgRepo{db: sqlx.NewDb(db, "postgres")}
}

const schema = `
CREATE TABLE IF NOT EXISTS lookups (
	id BIGSERIAL PRIMARY KEY,
	kind TEXT NOT NULL,
	dataset TEXT NOT NULL DEFAULT '',
	query TEXT NOT NULL,
	status INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

func (r *pgRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create lookups table: %w", err)
	}

	return nil
}

func (r *pgRepo) Record(ctx context.Context, l Lookup) error {
	query := `
	INSERT INTO lookups (kind, dataset, query, status)
	VALUES ($1, $2, $3, $4);`

	_, err := r.db.ExecContext(ctx, query, l.Kind, l.Dataset, l.Query, l.Status)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}

	return nil
}

func (r *pgRepo) ListRecent(ctx context.Context, limit int) ([]Lookup, error) {
	var ls []Lookup

	query := `
	SELECT id, kind, dataset, query, status, created_at
	FROM lookups
	ORDER BY created_at DESC, id DESC
	LIMIT $1;`

	err := r.db.SelectContext(ctx, &ls, query, limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("select lookups: %w", err)
	}

	return ls, nil
}
