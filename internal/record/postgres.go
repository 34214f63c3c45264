package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	entity     text        NOT NULL,
	id         text        NOT NULL,
	doc        jsonb       NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (entity, id)
)`

// Postgres stores records in a single jsonb table.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres ensures the backing table exists and returns the store.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (Postgres, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return Postgres{}, fmt.Errorf("ensure records table: %w", err)
	}
	return Postgres{Pool: pool}, nil
}

// Get fetches a single document.
func (p Postgres) Get(ctx context.Context, entity, id string) ([]byte, error) {
	var doc []byte
	err := p.Pool.QueryRow(ctx,
		`SELECT doc FROM records WHERE entity = $1 AND id = $2`, entity, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Put upserts a document.
func (p Postgres) Put(ctx context.Context, entity, id string, doc []byte) error {
	_, err := p.Pool.Exec(ctx,
		`INSERT INTO records (entity, id, doc) VALUES ($1, $2, $3)
		 ON CONFLICT (entity, id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		entity, id, doc)
	return err
}

// Delete removes a document. Missing records are not an error.
func (p Postgres) Delete(ctx context.Context, entity, id string) error {
	_, err := p.Pool.Exec(ctx,
		`DELETE FROM records WHERE entity = $1 AND id = $2`, entity, id)
	return err
}

// List returns all documents under the entity.
func (p Postgres) List(ctx context.Context, entity string) (map[string][]byte, error) {
	rows, err := p.Pool.Query(ctx,
		`SELECT id, doc FROM records WHERE entity = $1`, entity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]byte{}
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		out[id] = doc
	}
	return out, rows.Err()
}
