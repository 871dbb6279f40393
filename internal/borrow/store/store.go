package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lamdn/circura/internal/borrow"
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

// scanRequest reads a request row from the scanner.
// Expected column order: id, card_id, status, request_date, borrow_date, due_date, notes, created_at, updated_at
func scanRequest(s scanner) (*borrow.Request, error) {
	var req borrow.Request

	var statusStr string

	var notes sql.NullString

	if err := s.Scan(
		&req.ID, &req.CardID, &statusStr, &req.RequestDate, &req.BorrowDate,
		&req.DueDate, &notes, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, err
	}

	req.Status = borrow.Status(statusStr)
	req.Notes = notes.String

	return &req, nil
}

const selectRequestColumns = `
	r.id, r.card_id, r.status, r.request_date, r.borrow_date, r.due_date,
	r.notes, r.created_at, r.updated_at
`

// selectDetailColumns resolves title, code and price through the
// copy -> edition -> book relation at read time; nothing is stored twice.
const selectDetailColumns = `
	d.id, d.request_id, d.book_copy_id, d.actual_return_date,
	b.title as book_title, b.code as book_code, c.price
`

const detailJoins = `
	FROM borrow_details d
	JOIN book_copies c ON d.book_copy_id = c.id
	JOIN book_editions e ON c.edition_id = e.id
	JOIN books b ON e.book_id = b.id
`

func scanDetail(s scanner) (*borrow.Detail, error) {
	var d borrow.Detail

	if err := s.Scan(
		&d.ID, &d.RequestID, &d.CopyID, &d.ActualReturnDate,
		&d.BookTitle, &d.BookCode, &d.Price,
	); err != nil {
		return nil, err
	}

	return &d, nil
}

// CreateRequest inserts the request with its details atomically. The
// partial unique index on open details surfaces as ErrCopyUnavailable when
// a selected copy is already tied to an open request.
func (s *Store) CreateRequest(ctx context.Context, req *borrow.Request) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO borrow_requests (card_id, status, request_date, due_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		req.CardID,
		req.Status,
		req.RequestDate,
		req.DueDate,
		req.Notes,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	detailQuery := `
		INSERT INTO borrow_details (request_id, book_copy_id)
		VALUES ($1, $2)
		RETURNING id
	`

	for _, d := range req.Details {
		d.RequestID = req.ID

		if err := dbTx.QueryRowContext(ctx, detailQuery, req.ID, d.CopyID).Scan(&d.ID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return borrow.ErrCopyUnavailable
			}

			return fmt.Errorf("creating detail: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing request: %w", err)
	}

	return nil
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*borrow.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM borrow_requests r WHERE r.id = $1`

	req, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, borrow.ErrNotFound
		}

		return nil, fmt.Errorf("getting request: %w", err)
	}

	details, err := s.loadDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Details = details

	return req, nil
}

func (s *Store) loadDetails(ctx context.Context, requestID uuid.UUID) ([]*borrow.Detail, error) {
	query := `SELECT ` + selectDetailColumns + detailJoins + `
		WHERE d.request_id = $1
		ORDER BY b.code ASC, d.id ASC`

	rows, err := s.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("loading details: %w", err)
	}
	defer rows.Close()

	var details []*borrow.Detail

	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning detail: %w", err)
		}

		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating detail rows: %w", err)
	}

	return details, nil
}

func (s *Store) ListRequests(ctx context.Context, filter borrow.ListFilter) ([]*borrow.Request, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM borrow_requests r WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND r.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.CardID != nil {
		query += fmt.Sprintf(" AND r.card_id = $%d", argIdx)

		args = append(args, *filter.CardID)
		argIdx++
	}

	query += " ORDER BY r.request_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var reqs []*borrow.Request

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}

		reqs = append(reqs, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating request rows: %w", err)
	}

	for _, req := range reqs {
		details, err := s.loadDetails(ctx, req.ID)
		if err != nil {
			return nil, err
		}

		req.Details = details
	}

	return reqs, nil
}

// UpdateStatus moves the request to a new status. Rejecting or cancelling
// also stamps released_at on the request's open details, in the same
// transaction, so the partial unique index stops holding their copies and
// they can be requested again.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status borrow.Status) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE borrow_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := dbTx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating request status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return borrow.ErrNotFound
	}

	if status == borrow.StatusRejected || status == borrow.StatusCancelled {
		releaseQuery := `
			UPDATE borrow_details
			SET released_at = NOW()
			WHERE request_id = $1 AND actual_return_date IS NULL AND released_at IS NULL
		`

		if _, err := dbTx.ExecContext(ctx, releaseQuery, id); err != nil {
			return fmt.Errorf("releasing held copies: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing status update: %w", err)
	}

	return nil
}

func (s *Store) UpdateDueDate(ctx context.Context, id uuid.UUID, due time.Time) error {
	query := `
		UPDATE borrow_requests
		SET due_date = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, due, id)
	if err != nil {
		return fmt.Errorf("updating due date: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return borrow.ErrNotFound
	}

	return nil
}

func (s *Store) HandOut(ctx context.Context, id uuid.UUID, borrowDate time.Time) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE borrow_requests
		SET status = $1, borrow_date = $2, updated_at = NOW()
		WHERE id = $3
	`

	res, err := dbTx.ExecContext(ctx, query, borrow.StatusBorrowed, borrowDate, id)
	if err != nil {
		return fmt.Errorf("updating request: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return borrow.ErrNotFound
	}

	copyQuery := `
		UPDATE book_copies
		SET status = $1, updated_at = NOW()
		WHERE id IN (
			SELECT book_copy_id FROM borrow_details
			WHERE request_id = $2 AND actual_return_date IS NULL
		)
	`

	if _, err := dbTx.ExecContext(ctx, copyQuery, catalog.StatusBorrowed, id); err != nil {
		return fmt.Errorf("marking copies borrowed: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing hand-out: %w", err)
	}

	return nil
}

func (s *Store) CountOutstanding(ctx context.Context, cardID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM borrow_details d
		JOIN borrow_requests r ON d.request_id = r.id
		WHERE r.card_id = $1
		  AND r.status IN ('pending', 'approved', 'borrowed')
		  AND d.actual_return_date IS NULL
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, cardID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting outstanding copies: %w", err)
	}

	return count, nil
}

type returnTx struct {
	tx        *sql.Tx
	requestID uuid.UUID
}

func (s *Store) BeginReturn(ctx context.Context, requestID uuid.UUID) (borrow.ReturnTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning return tx: %w", err)
	}

	return &returnTx{tx: dbTx, requestID: requestID}, nil
}

func (rtx *returnTx) Commit() error   { return rtx.tx.Commit() }
func (rtx *returnTx) Rollback() error { return rtx.tx.Rollback() }

// StampReturn is the single-writer guard: the row-level update only
// succeeds while actual_return_date is NULL, so a second writer observes
// zero affected rows and reports a conflict instead of a second fine.
func (rtx *returnTx) StampReturn(ctx context.Context, detailID uuid.UUID, at time.Time) (*borrow.Detail, error) {
	query := `
		UPDATE borrow_details
		SET actual_return_date = $1
		WHERE id = $2 AND request_id = $3 AND actual_return_date IS NULL
	`

	res, err := rtx.tx.ExecContext(ctx, query, at, detailID, rtx.requestID)
	if err != nil {
		return nil, fmt.Errorf("stamping return date: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return nil, rtx.classifyStampFailure(ctx, detailID)
	}

	detailQuery := `SELECT ` + selectDetailColumns + detailJoins + ` WHERE d.id = $1`

	d, err := scanDetail(rtx.tx.QueryRowContext(ctx, detailQuery, detailID))
	if err != nil {
		return nil, fmt.Errorf("loading stamped detail: %w", err)
	}

	return d, nil
}

func (rtx *returnTx) classifyStampFailure(ctx context.Context, detailID uuid.UUID) error {
	var returned sql.NullTime

	err := rtx.tx.QueryRowContext(ctx,
		`SELECT actual_return_date FROM borrow_details WHERE id = $1 AND request_id = $2`,
		detailID, rtx.requestID,
	).Scan(&returned)
	if err != nil {
		if err == sql.ErrNoRows {
			return borrow.ErrDetailNotFound
		}

		return fmt.Errorf("classifying return failure: %w", err)
	}

	if returned.Valid {
		return borrow.ErrAlreadyReturned
	}

	return borrow.ErrDetailNotFound
}

func (rtx *returnTx) SetCopyStatus(ctx context.Context, copyID uuid.UUID, status catalog.CopyStatus) error {
	query := `
		UPDATE book_copies
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := rtx.tx.ExecContext(ctx, query, status, copyID); err != nil {
		return fmt.Errorf("setting copy status: %w", err)
	}

	return nil
}

func (rtx *returnTx) CreateFine(ctx context.Context, f *borrow.Fine) error {
	query := `
		INSERT INTO fines (request_id, detail_id, amount, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := rtx.tx.QueryRowContext(ctx, query,
		f.RequestID,
		f.DetailID,
		f.Amount,
		f.Reason,
		f.Status,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating fine: %w", err)
	}

	return nil
}

func (rtx *returnTx) OutstandingCount(ctx context.Context) (int, error) {
	var count int

	err := rtx.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM borrow_details WHERE request_id = $1 AND actual_return_date IS NULL`,
		rtx.requestID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting outstanding details: %w", err)
	}

	return count, nil
}

func (rtx *returnTx) SetRequestStatus(ctx context.Context, status borrow.Status) error {
	query := `
		UPDATE borrow_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := rtx.tx.ExecContext(ctx, query, status, rtx.requestID); err != nil {
		return fmt.Errorf("setting request status: %w", err)
	}

	return nil
}
