package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"autosuggest/internal/models"
)

// termColumns is the standard column list for term queries.
const termColumns = `id, term, popularity, description, image_ref, created_at, updated_at`

// scanTerm scans a row into a Term struct.
func scanTerm(row pgx.Row) (*models.Term, error) {
	var t models.Term
	err := row.Scan(
		&t.ID,
		&t.Term,
		&t.Popularity,
		&t.Description,
		&t.ImageRef,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTermNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scanTerms scans multiple rows into a slice of Terms.
func scanTerms(rows pgx.Rows) ([]models.Term, error) {
	defer rows.Close()

	terms := []models.Term{}
	for rows.Next() {
		var t models.Term
		if err := rows.Scan(
			&t.ID,
			&t.Term,
			&t.Popularity,
			&t.Description,
			&t.ImageRef,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}

	return terms, rows.Err()
}

// CreateTerm inserts a new term record.
func (d *DB) CreateTerm(ctx context.Context, t *models.Term) error {
	query := `
		INSERT INTO terms (term, popularity, description, image_ref)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query, t.Term, t.Popularity, t.Description, t.ImageRef).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTerm
		}
		return err
	}
	return nil
}

// GetTerm retrieves a term by case-insensitive match.
func (d *DB) GetTerm(ctx context.Context, term string) (*models.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms WHERE LOWER(term) = LOWER($1)`
	return scanTerm(d.Pool.QueryRow(ctx, query, term))
}

// SearchTerms returns terms whose lower-cased value contains query, ordered by
// match class (prefix before substring-only), popularity descending, then
// length ascending. query must already be normalized.
func (d *DB) SearchTerms(ctx context.Context, query string, limit int) ([]models.Term, error) {
	sql := `
		SELECT ` + termColumns + `
		FROM terms
		WHERE strpos(LOWER(term), $1) > 0
		ORDER BY
			CASE WHEN strpos(LOWER(term), $1) = 1 THEN 1 ELSE 2 END,
			popularity DESC,
			char_length(term) ASC,
			LOWER(term) ASC
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search terms: %w", err)
	}
	return scanTerms(rows)
}

// RandomTerms returns up to limit terms in random order.
func (d *DB) RandomTerms(ctx context.Context, limit int) ([]models.Term, error) {
	sql := `SELECT ` + termColumns + ` FROM terms ORDER BY RANDOM() LIMIT $1`
	rows, err := d.Pool.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample terms: %w", err)
	}
	return scanTerms(rows)
}

// TopTerms returns the n most popular terms.
func (d *DB) TopTerms(ctx context.Context, n int) ([]models.Term, error) {
	sql := `SELECT ` + termColumns + ` FROM terms ORDER BY popularity DESC, LOWER(term) ASC LIMIT $1`
	rows, err := d.Pool.Query(ctx, sql, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list top terms: %w", err)
	}
	return scanTerms(rows)
}

// IncrementPopularity adds one to a term's popularity in a single statement,
// so concurrent increments on the same row are never lost.
func (d *DB) IncrementPopularity(ctx context.Context, term string) error {
	query := `
		UPDATE terms
		SET popularity = popularity + 1, updated_at = NOW()
		WHERE LOWER(term) = LOWER($1)
	`
	result, err := d.Pool.Exec(ctx, query, term)
	if err != nil {
		return fmt.Errorf("failed to increment popularity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTermNotFound
	}
	return nil
}

// ResetPopularity sets a term's popularity back to zero (administrative reset).
func (d *DB) ResetPopularity(ctx context.Context, term string) error {
	result, err := d.Pool.Exec(ctx, `UPDATE terms SET popularity = 0, updated_at = NOW() WHERE LOWER(term) = LOWER($1)`, term)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTermNotFound
	}
	return nil
}
