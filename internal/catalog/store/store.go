package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lamdn/circura/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanCopy reads a copy row from the scanner and returns a populated Copy.
// Expected column order: id, edition_id, copy_number, status, price, book_title, book_code, created_at, updated_at
func scanCopy(s scanner) (*catalog.Copy, error) {
	var c catalog.Copy

	var statusStr string

	if err := s.Scan(
		&c.ID, &c.EditionID, &c.CopyNumber, &statusStr, &c.Price,
		&c.BookTitle, &c.BookCode,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Status = catalog.CopyStatus(statusStr)

	return &c, nil
}

const selectCopyColumns = `
	c.id, c.edition_id, c.copy_number, c.status, c.price,
	b.title as book_title, b.code as book_code, c.created_at, c.updated_at
`

const copyJoins = `
	FROM book_copies c
	JOIN book_editions e ON c.edition_id = e.id
	JOIN books b ON e.book_id = b.id
`

func (s *Store) GetCopy(ctx context.Context, id uuid.UUID) (*catalog.Copy, error) {
	query := `SELECT ` + selectCopyColumns + copyJoins + `WHERE c.id = $1`

	c, err := scanCopy(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting copy: %w", err)
	}

	return c, nil
}

func (s *Store) ListCopies(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Copy, error) {
	query := `SELECT ` + selectCopyColumns + copyJoins + `WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND c.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.EditionCode != nil {
		query += fmt.Sprintf(" AND e.code = $%d", argIdx)

		args = append(args, *filter.EditionCode)
		argIdx++
	}

	query += " ORDER BY b.code ASC, c.copy_number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing copies: %w", err)
	}
	defer rows.Close()

	var copies []*catalog.Copy

	for rows.Next() {
		c, err := scanCopy(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning copy: %w", err)
		}

		copies = append(copies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating copy rows: %w", err)
	}

	return copies, nil
}

func (s *Store) UpdateCopyStatus(ctx context.Context, id uuid.UUID, status catalog.CopyStatus) error {
	query := `
		UPDATE book_copies
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating copy status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.ErrNotFound
	}

	return nil
}

func (s *Store) CreateCopy(ctx context.Context, params catalog.CreateParams) (*catalog.Copy, error) {
	query := `
		INSERT INTO book_copies (edition_id, copy_number, status, price, created_at)
		SELECT e.id, $2, 'available', $3, NOW()
		FROM book_editions e
		WHERE e.code = $1
		RETURNING id
	`

	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, query, params.EditionCode, params.CopyNumber, params.Price).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrUnknownEdition
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, catalog.ErrDuplicateCopy
		}

		return nil, fmt.Errorf("creating copy: %w", err)
	}

	return s.GetCopy(ctx, id)
}
