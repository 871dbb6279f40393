package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CopyStatus represents the lifecycle state of a physical copy.
type CopyStatus string

const (
	StatusAvailable CopyStatus = "available"
	StatusBorrowed  CopyStatus = "borrowed"
	StatusDamaged   CopyStatus = "damaged"
	StatusDisposed  CopyStatus = "disposed"
)

func (s CopyStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusDamaged, StatusDisposed:
		return true
	}

	return false
}

// Copy represents one physical copy of a book edition.
type Copy struct {
	ID         uuid.UUID
	EditionID  uuid.UUID
	CopyNumber int
	Status     CopyStatus
	Price      int64 // Price in đồng
	BookTitle  string
	BookCode   string // Loaded via edition -> book JOIN
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

var (
	ErrNotFound       = errors.New("book copy not found")
	ErrUnknownEdition = errors.New("unknown edition code")
	ErrDuplicateCopy  = errors.New("copy number already registered for this edition")
)
