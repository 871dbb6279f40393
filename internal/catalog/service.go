package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	GetCopy(ctx context.Context, id uuid.UUID) (*Copy, error)
	ListCopies(ctx context.Context, filter ListFilter) ([]*Copy, error)
	UpdateCopyStatus(ctx context.Context, id uuid.UUID, status CopyStatus) error

	// CreateCopy resolves the edition code and inserts the copy. Returns
	// ErrUnknownEdition when the code does not resolve and ErrDuplicateCopy
	// when the copy number is already taken within the edition.
	CreateCopy(ctx context.Context, params CreateParams) (*Copy, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Status      *CopyStatus
	EditionCode *string
}

type CreateParams struct {
	EditionCode string
	CopyNumber  int
	Price       int64
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Copy, error) {
	return s.repo.GetCopy(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Copy, error) {
	return s.repo.ListCopies(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status CopyStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid copy status: %q", status)
	}

	return s.repo.UpdateCopyStatus(ctx, id, status)
}

// RowFailure reports one manifest row that could not be registered.
type RowFailure struct {
	Params CreateParams
	Reason string
}

// RegisterResult reports the outcome of a batch registration. Rows fail
// individually; the batch is not atomic.
type RegisterResult struct {
	Created []*Copy
	Failed  []RowFailure
}

// RegisterBatch registers copies from an imported manifest. Rows with an
// unknown edition code or a duplicate copy number are reported per-row and
// do not abort the rest of the batch.
func (s *Service) RegisterBatch(ctx context.Context, params []CreateParams) (*RegisterResult, error) {
	result := &RegisterResult{}

	for _, p := range params {
		if p.EditionCode == "" {
			result.Failed = append(result.Failed, RowFailure{Params: p, Reason: "edition code is required"})
			continue
		}

		if p.CopyNumber <= 0 {
			result.Failed = append(result.Failed, RowFailure{Params: p, Reason: "copy number must be positive"})
			continue
		}

		c, err := s.repo.CreateCopy(ctx, p)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnknownEdition):
				result.Failed = append(result.Failed, RowFailure{Params: p, Reason: "unknown edition code"})
			case errors.Is(err, ErrDuplicateCopy):
				result.Failed = append(result.Failed, RowFailure{Params: p, Reason: "copy number already registered"})
			default:
				return nil, fmt.Errorf("registering copy %s/%d: %w", p.EditionCode, p.CopyNumber, err)
			}

			continue
		}

		result.Created = append(result.Created, c)
	}

	return result, nil
}
