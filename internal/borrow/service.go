package borrow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lamdn/circura/internal/catalog"
	"github.com/lamdn/circura/internal/fine"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=borrow
type Repository interface {
	CreateRequest(ctx context.Context, req *Request) error
	GetRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]*Request, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateDueDate(ctx context.Context, id uuid.UUID, due time.Time) error

	// HandOut flips the request to borrowed, stamps the borrow date and
	// marks every outstanding copy as borrowed, all in one transaction.
	HandOut(ctx context.Context, id uuid.UUID, borrowDate time.Time) error

	// CountOutstanding counts copies the card currently holds across its
	// pending, approved and borrowed requests.
	CountOutstanding(ctx context.Context, cardID uuid.UUID) (int, error)

	BeginReturn(ctx context.Context, requestID uuid.UUID) (ReturnTx, error)
}

// ReturnTx scopes the mutations of one return batch to a single database
// transaction.
type ReturnTx interface {
	// StampReturn sets the return date on an outstanding detail of the
	// request. Returns ErrDetailNotFound when the detail does not belong to
	// the request and ErrAlreadyReturned when the return date is already
	// set, so a concurrent or repeated return never double-counts.
	StampReturn(ctx context.Context, detailID uuid.UUID, at time.Time) (*Detail, error)

	SetCopyStatus(ctx context.Context, copyID uuid.UUID, status catalog.CopyStatus) error
	CreateFine(ctx context.Context, f *Fine) error

	// OutstandingCount counts the request's details still missing a return date.
	OutstandingCount(ctx context.Context) (int, error)

	SetRequestStatus(ctx context.Context, status Status) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the service clock. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateParams struct {
	CardID      uuid.UUID
	CopyIDs     []uuid.UUID
	Notes       string
	RequestDate time.Time // Zero value means now
}

type ListFilter struct {
	Status *Status
	CardID *uuid.UUID
}

// Create registers a new pending borrow request. The due date is derived
// from the request date plus the policy's maximum borrow days and can only
// grow afterwards (see Extend).
func (s *Service) Create(ctx context.Context, params CreateParams, policy Policy) (*Request, error) {
	var verr ValidationError

	if params.CardID == uuid.Nil {
		verr.Fields = append(verr.Fields, FieldError{Field: "card_id", Message: "library card is required"})
	}

	if len(params.CopyIDs) == 0 {
		verr.Fields = append(verr.Fields, FieldError{Field: "copy_ids", Message: "at least one copy must be selected"})
	}

	seen := make(map[uuid.UUID]struct{}, len(params.CopyIDs))

	for _, id := range params.CopyIDs {
		if _, dup := seen[id]; dup {
			verr.Fields = append(verr.Fields, FieldError{Field: "copy_ids", Message: "duplicate copy " + id.String()})
			break
		}

		seen[id] = struct{}{}
	}

	if len(verr.Fields) > 0 {
		return nil, &verr
	}

	held, err := s.repo.CountOutstanding(ctx, params.CardID)
	if err != nil {
		return nil, fmt.Errorf("counting outstanding copies: %w", err)
	}

	if policy.MaxBooksPerUser > 0 && held+len(params.CopyIDs) > policy.MaxBooksPerUser {
		return nil, validationError("copy_ids",
			fmt.Sprintf("limit of %d borrowed books exceeded (%d already held)", policy.MaxBooksPerUser, held))
	}

	requestDate := params.RequestDate
	if requestDate.IsZero() {
		requestDate = s.now()
	}

	req := &Request{
		CardID:      params.CardID,
		Status:      StatusPending,
		RequestDate: requestDate,
		DueDate:     requestDate.AddDate(0, 0, policy.MaxBorrowDays),
		Notes:       params.Notes,
	}

	for _, copyID := range params.CopyIDs {
		req.Details = append(req.Details, &Detail{CopyID: copyID})
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.repo.GetRequest(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Request, error) {
	return s.repo.ListRequests(ctx, filter)
}

// Approve moves a pending request to approved. Staff only.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, "approve", StatusPending, StatusApproved)
}

// Reject declines a pending request. Staff only; terminal.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, "reject", StatusPending, StatusRejected)
}

// Cancel withdraws a pending request. Reader initiated; terminal and
// distinct from rejection.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, "cancel", StatusPending, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, op string, from, to Status) error {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return err
	}

	if req.Status != from {
		return stateError(op, req.Status)
	}

	return s.repo.UpdateStatus(ctx, id, to)
}

// HandOut records the physical hand-out of an approved request's copies.
func (s *Service) HandOut(ctx context.Context, id uuid.UUID) error {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return err
	}

	if req.Status != StatusApproved {
		return stateError("hand out", req.Status)
	}

	return s.repo.HandOut(ctx, id, s.now())
}

// Extend moves the due date forward. The new date must be strictly after
// tomorrow and after the current due date; when the request is already
// overdue only the tomorrow bound applies. The due date never shrinks.
func (s *Service) Extend(ctx context.Context, id uuid.UUID, newDue time.Time) (*Request, error) {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != StatusApproved && req.Status != StatusBorrowed {
		return nil, stateError("extend", req.Status)
	}

	now := s.now()
	floor := now.AddDate(0, 0, 1)

	if req.DueDate.After(now) && req.DueDate.After(floor) {
		floor = req.DueDate
	}

	if !newDue.After(floor) {
		return nil, validationError("due_date",
			fmt.Sprintf("new due date must be after %s", floor.Format(time.DateOnly)))
	}

	if err := s.repo.UpdateDueDate(ctx, id, newDue); err != nil {
		return nil, err
	}

	req.DueDate = newDue

	return req, nil
}

// ReturnItem selects one outstanding detail for return.
type ReturnItem struct {
	DetailID  uuid.UUID
	Condition fine.Condition
	Note      string
}

// ReturnedItem reports one successfully processed return.
type ReturnedItem struct {
	Detail      *Detail
	Condition   fine.Condition
	DaysOverdue int
	FineAmount  int64
}

// ItemFailure reports one selected detail that could not be returned.
type ItemFailure struct {
	DetailID uuid.UUID
	Reason   string
}

// ReturnResult is the per-item outcome of a return batch. The batch is not
// atomic across unrelated details; failures are reported item by item.
type ReturnResult struct {
	Returned      []ReturnedItem
	Failed        []ItemFailure
	Fines         []*Fine
	TotalFine     int64
	RequestStatus Status
}

// ProcessReturn stamps the selected details as returned, adjusts copy
// statuses by condition, creates unpaid fines where due and flips the
// request to returned once nothing is outstanding.
func (s *Service) ProcessReturn(ctx context.Context, requestID uuid.UUID, items []ReturnItem, policy Policy) (*ReturnResult, error) {
	if len(items) == 0 {
		return nil, validationError("items", "at least one copy must be selected")
	}

	for _, item := range items {
		if !item.Condition.Valid() {
			return nil, validationError("condition",
				fmt.Sprintf("invalid condition %q for detail %s", item.Condition, item.DetailID))
		}
	}

	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status != StatusBorrowed {
		return nil, stateError("return copies of", req.Status)
	}

	now := s.now()

	tx, err := s.repo.BeginReturn(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("begin return: %w", err)
	}
	defer tx.Rollback()

	result := &ReturnResult{RequestStatus: req.Status}

	for _, item := range items {
		detail, err := tx.StampReturn(ctx, item.DetailID, now)
		if err != nil {
			switch {
			case errors.Is(err, ErrDetailNotFound):
				result.Failed = append(result.Failed, ItemFailure{DetailID: item.DetailID, Reason: "detail does not belong to this request"})
			case errors.Is(err, ErrAlreadyReturned):
				result.Failed = append(result.Failed, ItemFailure{DetailID: item.DetailID, Reason: "copy already returned"})
			default:
				return nil, fmt.Errorf("stamping return: %w", err)
			}

			continue
		}

		if err := tx.SetCopyStatus(ctx, detail.CopyID, copyStatusFor(item.Condition)); err != nil {
			return nil, fmt.Errorf("updating copy status: %w", err)
		}

		days := fine.DaysOverdue(req.DueDate, now)
		amount := fine.Calculate(detail.Price, days, policy.FineRatePercent, item.Condition)

		if amount > 0 {
			f := &Fine{
				RequestID: requestID,
				DetailID:  detail.ID,
				Amount:    amount,
				Reason:    fineReason(days, item.Condition, item.Note),
				Status:    FineUnpaid,
			}

			if err := tx.CreateFine(ctx, f); err != nil {
				return nil, fmt.Errorf("creating fine: %w", err)
			}

			result.Fines = append(result.Fines, f)
			result.TotalFine += amount
		}

		result.Returned = append(result.Returned, ReturnedItem{
			Detail:      detail,
			Condition:   item.Condition,
			DaysOverdue: days,
			FineAmount:  amount,
		})
	}

	outstanding, err := tx.OutstandingCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting outstanding details: %w", err)
	}

	if outstanding == 0 {
		if err := tx.SetRequestStatus(ctx, StatusReturned); err != nil {
			return nil, fmt.Errorf("closing request: %w", err)
		}

		result.RequestStatus = StatusReturned
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit return: %w", err)
	}

	return result, nil
}

// PreviewReturn computes the fines a return batch would create without
// mutating anything. Serves the confirmation step in clients.
func (s *Service) PreviewReturn(ctx context.Context, requestID uuid.UUID, items []ReturnItem, policy Policy) (*ReturnResult, error) {
	if len(items) == 0 {
		return nil, validationError("items", "at least one copy must be selected")
	}

	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status != StatusBorrowed {
		return nil, stateError("preview returns for", req.Status)
	}

	byID := make(map[uuid.UUID]*Detail, len(req.Details))
	for _, d := range req.Details {
		byID[d.ID] = d
	}

	now := s.now()
	result := &ReturnResult{RequestStatus: req.Status}

	for _, item := range items {
		if !item.Condition.Valid() {
			return nil, validationError("condition",
				fmt.Sprintf("invalid condition %q for detail %s", item.Condition, item.DetailID))
		}

		detail, ok := byID[item.DetailID]
		if !ok {
			result.Failed = append(result.Failed, ItemFailure{DetailID: item.DetailID, Reason: "detail does not belong to this request"})
			continue
		}

		if detail.ActualReturnDate != nil {
			result.Failed = append(result.Failed, ItemFailure{DetailID: item.DetailID, Reason: "copy already returned"})
			continue
		}

		days := fine.DaysOverdue(req.DueDate, now)
		amount := fine.Calculate(detail.Price, days, policy.FineRatePercent, item.Condition)

		result.Returned = append(result.Returned, ReturnedItem{
			Detail:      detail,
			Condition:   item.Condition,
			DaysOverdue: days,
			FineAmount:  amount,
		})
		result.TotalFine += amount
	}

	return result, nil
}

func copyStatusFor(c fine.Condition) catalog.CopyStatus {
	switch c {
	case fine.ConditionDamaged:
		return catalog.StatusDamaged
	case fine.ConditionLost:
		return catalog.StatusDisposed
	default:
		return catalog.StatusAvailable
	}
}

func fineReason(daysOverdue int, condition fine.Condition, note string) string {
	var parts []string

	if daysOverdue > 0 {
		parts = append(parts, fmt.Sprintf("overdue %d days", daysOverdue))
	}

	switch condition {
	case fine.ConditionDamaged:
		parts = append(parts, "returned damaged")
	case fine.ConditionLost:
		parts = append(parts, "lost")
	}

	reason := strings.Join(parts, ", ")
	if note != "" {
		reason += " (" + note + ")"
	}

	return reason
}
