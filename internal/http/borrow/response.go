package borrow

import (
	"time"

	"github.com/google/uuid"

	"github.com/lamdn/circura/internal/borrow"
)

type requestResponse struct {
	ID          uuid.UUID        `json:"id"`
	CardID      uuid.UUID        `json:"card_id"`
	Status      borrow.Status    `json:"status"`
	Overdue     bool             `json:"overdue"`
	RequestDate time.Time        `json:"request_date"`
	BorrowDate  *time.Time       `json:"borrow_date,omitempty"`
	DueDate     time.Time        `json:"due_date"`
	Notes       string           `json:"notes,omitempty"`
	Details     []detailResponse `json:"details"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

type detailResponse struct {
	ID               uuid.UUID  `json:"id"`
	CopyID           uuid.UUID  `json:"copy_id"`
	BookTitle        string     `json:"book_title"`
	BookCode         string     `json:"book_code"`
	Price            int64      `json:"price"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`
}

type fineResponse struct {
	ID        uuid.UUID         `json:"id"`
	DetailID  uuid.UUID         `json:"detail_id"`
	Amount    int64             `json:"amount"`
	Reason    string            `json:"reason"`
	Status    borrow.FineStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

type returnedItemResponse struct {
	DetailID    uuid.UUID `json:"detail_id"`
	BookTitle   string    `json:"book_title"`
	Condition   string    `json:"condition"`
	DaysOverdue int       `json:"days_overdue"`
	FineAmount  int64     `json:"fine_amount"`
}

type itemFailureResponse struct {
	DetailID uuid.UUID `json:"detail_id"`
	Reason   string    `json:"reason"`
}

type returnResultResponse struct {
	Returned      []returnedItemResponse `json:"returned"`
	Failed        []itemFailureResponse  `json:"failed"`
	Fines         []fineResponse         `json:"fines"`
	TotalFine     int64                  `json:"total_fine"`
	RequestStatus borrow.Status          `json:"request_status"`
}

func toResponse(req *borrow.Request, now time.Time) requestResponse {
	resp := requestResponse{
		ID:          req.ID,
		CardID:      req.CardID,
		Status:      req.Status,
		Overdue:     borrow.IsOverdue(req, now),
		RequestDate: req.RequestDate,
		BorrowDate:  req.BorrowDate,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		Details:     make([]detailResponse, len(req.Details)),
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}

	for i, d := range req.Details {
		resp.Details[i] = detailResponse{
			ID:               d.ID,
			CopyID:           d.CopyID,
			BookTitle:        d.BookTitle,
			BookCode:         d.BookCode,
			Price:            d.Price,
			ActualReturnDate: d.ActualReturnDate,
		}
	}

	return resp
}

func toResponseList(reqs []*borrow.Request, now time.Time) []requestResponse {
	resp := make([]requestResponse, len(reqs))
	for i, req := range reqs {
		resp[i] = toResponse(req, now)
	}

	return resp
}

func toReturnResponse(result *borrow.ReturnResult) returnResultResponse {
	resp := returnResultResponse{
		Returned:      make([]returnedItemResponse, len(result.Returned)),
		Failed:        make([]itemFailureResponse, len(result.Failed)),
		Fines:         make([]fineResponse, len(result.Fines)),
		TotalFine:     result.TotalFine,
		RequestStatus: result.RequestStatus,
	}

	for i, item := range result.Returned {
		resp.Returned[i] = returnedItemResponse{
			DetailID:    item.Detail.ID,
			BookTitle:   item.Detail.BookTitle,
			Condition:   string(item.Condition),
			DaysOverdue: item.DaysOverdue,
			FineAmount:  item.FineAmount,
		}
	}

	for i, failure := range result.Failed {
		resp.Failed[i] = itemFailureResponse{
			DetailID: failure.DetailID,
			Reason:   failure.Reason,
		}
	}

	for i, f := range result.Fines {
		resp.Fines[i] = fineResponse{
			ID:        f.ID,
			DetailID:  f.DetailID,
			Amount:    f.Amount,
			Reason:    f.Reason,
			Status:    f.Status,
			CreatedAt: f.CreatedAt,
		}
	}

	return resp
}
