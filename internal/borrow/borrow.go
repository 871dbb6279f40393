package borrow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a borrow request.
//
// pending -> approved -> borrowed -> returned, with side branches
// pending -> rejected (staff) and pending -> cancelled (reader).
// Overdue is never stored; see IsOverdue.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusBorrowed  Status = "borrowed"
	StatusReturned  Status = "returned"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Request aggregates the copies a reader borrows under one library card.
type Request struct {
	ID          uuid.UUID
	CardID      uuid.UUID
	Status      Status
	RequestDate time.Time
	BorrowDate  *time.Time // Set when copies are handed out
	DueDate     time.Time
	Notes       string
	Details     []*Detail
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Detail records the loan of one physical copy under a request.
// ActualReturnDate is nil while the copy is outstanding and immutable once
// set; there is no un-return.
type Detail struct {
	ID               uuid.UUID
	RequestID        uuid.UUID
	CopyID           uuid.UUID
	ActualReturnDate *time.Time
	BookTitle        string // Loaded via copy -> edition -> book JOIN
	BookCode         string
	Price            int64
}

// FineStatus tracks whether a fine has been settled.
type FineStatus string

const (
	FineUnpaid FineStatus = "unpaid"
	FinePaid   FineStatus = "paid"
)

// Fine is created as a byproduct of return processing, never standalone.
type Fine struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	DetailID  uuid.UUID
	Amount    int64
	Reason    string
	Status    FineStatus
	CreatedAt time.Time
}

// Policy carries the circulation settings injected into borrow operations.
type Policy struct {
	FineRatePercent float64
	MaxBorrowDays   int
	MaxBooksPerUser int
}

// IsOverdue reports whether a borrowed request is past its due date. The
// overdue state is a projection computed at read time, never persisted.
func IsOverdue(req *Request, now time.Time) bool {
	return req.Status == StatusBorrowed && now.After(req.DueDate)
}

// Outstanding returns the details that have not been returned yet.
func (r *Request) Outstanding() []*Detail {
	var out []*Detail

	for _, d := range r.Details {
		if d.ActualReturnDate == nil {
			out = append(out, d)
		}
	}

	return out
}

var (
	ErrNotFound        = errors.New("borrow request not found")
	ErrDetailNotFound  = errors.New("borrow detail not found")
	ErrAlreadyReturned = errors.New("copy already returned")
	ErrCopyUnavailable = errors.New("book copy is already on loan")
	ErrInvalidState    = errors.New("invalid request state")
)

// FieldError describes a validation failure on a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field input failures so callers can
// surface them next to the offending fields.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

func validationError(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func stateError(op string, from Status) error {
	return fmt.Errorf("cannot %s a %s request: %w", op, from, ErrInvalidState)
}
