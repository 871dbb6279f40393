package borrow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lamdn/circura/internal/borrow"
	"github.com/lamdn/circura/internal/notifier"
	"github.com/lamdn/circura/internal/settings"
)

func newTestHandler(t *testing.T) (*Handler, *borrow.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := borrow.NewMockRepository(ctrl)

	settingsRepo := settings.NewMockRepository(ctrl)
	settingsRepo.EXPECT().GetValue(gomock.Any(), gomock.Any()).Return("", nil).AnyTimes()

	h := NewHandler(
		borrow.NewService(repo),
		settings.NewService(settingsRepo),
		notifier.New("", nil),
	)

	return h, repo
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/borrow-requests", func(r chi.Router) {
		h.Routes(r)
		h.StaffRoutes(r)
	})

	return r
}

func TestHandler_Create_ValidationFailure(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newTestRouter(h)

	body := bytes.NewBufferString(`{"card_id":"00000000-0000-0000-0000-000000000000","copy_ids":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/borrow-requests/", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Errors []borrow.FieldError `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Errors, 2)
}

func TestHandler_Create_Success(t *testing.T) {
	h, repo := newTestHandler(t)
	router := newTestRouter(h)

	cardID := uuid.New()
	copyID := uuid.New()

	repo.EXPECT().CountOutstanding(gomock.Any(), cardID).Return(0, nil)
	repo.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req *borrow.Request) error {
			req.ID = uuid.New()
			return nil
		})

	body := bytes.NewBufferString(fmt.Sprintf(
		`{"card_id":%q,"copy_ids":[%q]}`, cardID, copyID))
	req := httptest.NewRequest(http.MethodPost, "/borrow-requests/", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp requestResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, cardID, resp.CardID)
	assert.Equal(t, borrow.StatusPending, resp.Status)
	assert.Len(t, resp.Details, 1)
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, repo := newTestHandler(t)
	router := newTestRouter(h)

	id := uuid.New()
	repo.EXPECT().GetRequest(gomock.Any(), id).Return(nil, borrow.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/borrow-requests/"+id.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Approve_InvalidState(t *testing.T) {
	h, repo := newTestHandler(t)
	router := newTestRouter(h)

	id := uuid.New()
	repo.EXPECT().GetRequest(gomock.Any(), id).Return(&borrow.Request{
		ID:     id,
		Status: borrow.StatusReturned,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/borrow-requests/"+id.String()+"/approve", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_ProcessReturn(t *testing.T) {
	h, repo := newTestHandler(t)
	router := newTestRouter(h)

	requestID := uuid.New()
	detailID := uuid.New()
	copyID := uuid.New()
	due := time.Now().AddDate(0, 0, 7)

	repo.EXPECT().GetRequest(gomock.Any(), requestID).Return(&borrow.Request{
		ID:      requestID,
		Status:  borrow.StatusBorrowed,
		DueDate: due,
		Details: []*borrow.Detail{{ID: detailID, RequestID: requestID, CopyID: copyID, Price: 100000}},
	}, nil)

	ctrl := gomock.NewController(t)
	tx := borrow.NewMockReturnTx(ctrl)
	repo.EXPECT().BeginReturn(gomock.Any(), requestID).Return(tx, nil)

	tx.EXPECT().StampReturn(gomock.Any(), detailID, gomock.Any()).Return(&borrow.Detail{
		ID:        detailID,
		RequestID: requestID,
		CopyID:    copyID,
		Price:     100000,
		BookTitle: "Số đỏ",
	}, nil)
	tx.EXPECT().SetCopyStatus(gomock.Any(), copyID, gomock.Any()).Return(nil)
	tx.EXPECT().OutstandingCount(gomock.Any()).Return(0, nil)
	tx.EXPECT().SetRequestStatus(gomock.Any(), borrow.StatusReturned).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil).AnyTimes()

	body := bytes.NewBufferString(fmt.Sprintf(
		`{"items":[{"detail_id":%q,"condition":"normal"}]}`, detailID))
	req := httptest.NewRequest(http.MethodPost, "/borrow-requests/"+requestID.String()+"/return", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp returnResultResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Returned, 1)
	assert.Empty(t, resp.Failed)
	assert.Zero(t, resp.TotalFine)
	assert.Equal(t, borrow.StatusReturned, resp.RequestStatus)
}

func TestHandler_ProcessReturn_PartialFailure(t *testing.T) {
	h, repo := newTestHandler(t)
	router := newTestRouter(h)

	requestID := uuid.New()
	okID := uuid.New()
	foreignID := uuid.New()
	copyID := uuid.New()
	due := time.Now().AddDate(0, 0, 7)

	repo.EXPECT().GetRequest(gomock.Any(), requestID).Return(&borrow.Request{
		ID:      requestID,
		Status:  borrow.StatusBorrowed,
		DueDate: due,
		Details: []*borrow.Detail{
			{ID: okID, RequestID: requestID, CopyID: copyID, Price: 100000},
			{ID: uuid.New(), RequestID: requestID, CopyID: uuid.New(), Price: 40000},
		},
	}, nil)

	ctrl := gomock.NewController(t)
	tx := borrow.NewMockReturnTx(ctrl)
	repo.EXPECT().BeginReturn(gomock.Any(), requestID).Return(tx, nil)

	tx.EXPECT().StampReturn(gomock.Any(), okID, gomock.Any()).Return(&borrow.Detail{
		ID:        okID,
		RequestID: requestID,
		CopyID:    copyID,
		Price:     100000,
	}, nil)
	tx.EXPECT().StampReturn(gomock.Any(), foreignID, gomock.Any()).
		Return(nil, borrow.ErrDetailNotFound)
	tx.EXPECT().SetCopyStatus(gomock.Any(), copyID, gomock.Any()).Return(nil)
	tx.EXPECT().OutstandingCount(gomock.Any()).Return(1, nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil).AnyTimes()

	body := bytes.NewBufferString(fmt.Sprintf(
		`{"items":[{"detail_id":%q,"condition":"normal"},{"detail_id":%q,"condition":"normal"}]}`,
		okID, foreignID))
	req := httptest.NewRequest(http.MethodPost, "/borrow-requests/"+requestID.String()+"/return", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMultiStatus, rec.Code)

	var resp returnResultResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Returned, 1)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, foreignID, resp.Failed[0].DetailID)
	assert.Equal(t, borrow.StatusBorrowed, resp.RequestStatus)
}
