package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"autosuggest/internal/config"
	"autosuggest/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedTerms inserts seed terms. Terms that already exist (case-insensitively)
// are left untouched so accumulated popularity survives restarts.
func (d *DB) SeedTerms(ctx context.Context, seed *config.SeedFile) (int, error) {
	if seed == nil {
		return 0, nil
	}

	query := `
		INSERT INTO terms (term, popularity, description, image_ref)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ((LOWER(term))) DO NOTHING
	`

	inserted := 0
	for _, t := range seed.Terms {
		tag, err := d.Pool.Exec(ctx, query, t.Term, t.Popularity, nullable(t.Description), nullable(t.ImageRef))
		if err != nil {
			return inserted, fmt.Errorf("failed to seed term %s: %w", t.Term, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
