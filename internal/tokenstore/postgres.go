package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/TemirB/figurine-cart/internal/config"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres stores the token as one row keyed by the configured token key.
type Postgres struct {
	db     querier
	tables config.Tables
	key    string
}

func NewPostgres(db querier, tables config.Tables, key string) *Postgres {
	return &Postgres{db: db, tables: tables, key: key}
}

func (p *Postgres) qt() string {
	return pgx.Identifier{p.tables.Schema, p.tables.Session}.Sanitize()
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`,
		pgx.Identifier{p.tables.Schema}.Sanitize())); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := p.db.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        text PRIMARY KEY,
			token      text NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`, p.qt())); err != nil {
		return fmt.Errorf("create session table: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context) (string, error) {
	var token string
	err := p.db.QueryRow(ctx, fmt.Sprintf(`SELECT token FROM %s WHERE key=$1`, p.qt()), p.key).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (p *Postgres) Save(ctx context.Context, token string) error {
	_, err := p.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (key, token, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET token=EXCLUDED.token, updated_at=EXCLUDED.updated_at
	`, p.qt()), p.key, token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE key=$1`, p.qt()), p.key); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
