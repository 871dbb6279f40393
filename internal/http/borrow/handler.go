package borrow

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lamdn/circura/internal/borrow"
	"github.com/lamdn/circura/internal/fine"
	"github.com/lamdn/circura/internal/http/auth"
	"github.com/lamdn/circura/internal/notifier"
	"github.com/lamdn/circura/internal/settings"
)

type Handler struct {
	svc      *borrow.Service
	settings *settings.Service
	notify   *notifier.Notifier
}

func NewHandler(svc *borrow.Service, settings *settings.Service, notify *notifier.Notifier) *Handler {
	return &Handler{svc: svc, settings: settings, notify: notify}
}

// Routes mounts the reader-facing endpoints. Readers only ever see their
// own requests.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/cancel", h.cancel)
}

// StaffRoutes mounts the circulation-desk endpoints. The router guards
// them with a staff role check.
func (h *Handler) StaffRoutes(r chi.Router) {
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
	r.Post("/{id}/handout", h.handOut)
	r.Patch("/{id}/due-date", h.extend)
	r.Post("/{id}/return", h.processReturn)
	r.Post("/{id}/return/preview", h.previewReturn)
}

type createRequestBody struct {
	CardID  uuid.UUID   `json:"card_id"`
	CopyIDs []uuid.UUID `json:"copy_ids"`
	Notes   string      `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	claims, _ := auth.FromContext(r.Context())
	if claims != nil && claims.Role != auth.RoleStaff {
		// Readers can only request for their own card.
		cardID, err := uuid.Parse(claims.CardID)
		if err != nil || cardID != body.CardID {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
	}

	policy, err := h.policy(r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	req, err := h.svc.Create(r.Context(), borrow.CreateParams{
		CardID:  body.CardID,
		CopyIDs: body.CopyIDs,
		Notes:   body.Notes,
	}, policy)
	if err != nil {
		writeError(w, err)
		return
	}

	h.notify.Notify(notifier.Event{
		Name: notifier.EventRequestCreated,
		Payload: map[string]any{
			"request_id": req.ID,
			"card_id":    req.CardID,
			"copies":     len(req.Details),
		},
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(req, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := borrow.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := borrow.Status(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("card_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CardID = &id
		}
	}

	claims, _ := auth.FromContext(r.Context())
	if claims != nil && claims.Role != auth.RoleStaff {
		cardID, err := uuid.Parse(claims.CardID)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		filter.CardID = &cardID
	}

	reqs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(reqs, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	req, ok := h.ownedRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(req, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	req, ok := h.ownedRequest(w, r)
	if !ok {
		return
	}

	if err := h.svc.Cancel(r.Context(), req.ID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Approve, notifier.EventRequestApproved)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Reject, notifier.EventRequestRejected)
}

func (h *Handler) handOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.HandOut, notifier.EventBooksHandedOut)
}

type extendRequestBody struct {
	DueDate time.Time `json:"due_date"`
}

func (h *Handler) extend(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var body extendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req, err := h.svc.Extend(r.Context(), id, body.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(req, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type returnItemBody struct {
	DetailID  uuid.UUID `json:"detail_id"`
	Condition string    `json:"condition"`
	Note      string    `json:"note"`
}

type returnRequestBody struct {
	Items []returnItemBody `json:"items"`
}

func (h *Handler) processReturn(w http.ResponseWriter, r *http.Request) {
	h.runReturn(w, r, h.svc.ProcessReturn, true)
}

func (h *Handler) previewReturn(w http.ResponseWriter, r *http.Request) {
	h.runReturn(w, r, h.svc.PreviewReturn, false)
}

type returnFunc func(ctx context.Context, requestID uuid.UUID, items []borrow.ReturnItem, policy borrow.Policy) (*borrow.ReturnResult, error)

func (h *Handler) runReturn(w http.ResponseWriter, r *http.Request, run returnFunc, notify bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var body returnRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]borrow.ReturnItem, len(body.Items))
	for i, item := range body.Items {
		items[i] = borrow.ReturnItem{
			DetailID:  item.DetailID,
			Condition: fine.Condition(item.Condition),
			Note:      item.Note,
		}
	}

	policy, err := h.policy(r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	result, err := run(r.Context(), id, items, policy)
	if err != nil {
		writeError(w, err)
		return
	}

	if notify {
		h.notify.Notify(notifier.Event{
			Name: notifier.EventBooksReturned,
			Payload: map[string]any{
				"request_id": id,
				"returned":   len(result.Returned),
				"failed":     len(result.Failed),
				"total_fine": result.TotalFine,
			},
		})

		for _, f := range result.Fines {
			h.notify.Notify(notifier.Event{
				Name: notifier.EventFineCreated,
				Payload: map[string]any{
					"request_id": id,
					"detail_id":  f.DetailID,
					"amount":     f.Amount,
					"reason":     f.Reason,
				},
			})
		}
	}

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(toReturnResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// transition handles the argument-less status transitions that only differ
// in the service call and the event they emit.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, run func(ctx context.Context, id uuid.UUID) error, event string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := run(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	h.notify.Notify(notifier.Event{
		Name:    event,
		Payload: map[string]any{"request_id": id},
	})

	w.WriteHeader(http.StatusNoContent)
}

// ownedRequest loads the request and enforces that readers only access
// their own. A foreign request reads as not found, not forbidden.
func (h *Handler) ownedRequest(w http.ResponseWriter, r *http.Request) (*borrow.Request, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	req, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}

	claims, _ := auth.FromContext(r.Context())
	if claims != nil && claims.Role != auth.RoleStaff {
		cardID, parseErr := uuid.Parse(claims.CardID)
		if parseErr != nil || req.CardID != cardID {
			http.Error(w, "borrow request not found", http.StatusNotFound)
			return nil, false
		}
	}

	return req, true
}

func (h *Handler) policy(r *http.Request) (borrow.Policy, error) {
	p, err := h.settings.Policy(r.Context())
	if err != nil {
		slog.Error("failed to load circulation policy", "error", err)
		return borrow.Policy{}, err
	}

	return borrow.Policy{
		FineRatePercent: p.FineRatePercent,
		MaxBorrowDays:   p.MaxBorrowDays,
		MaxBooksPerUser: p.MaxBooksPerUser,
	}, nil
}

type validationResponse struct {
	Errors []borrow.FieldError `json:"errors"`
}

func writeError(w http.ResponseWriter, err error) {
	var verr *borrow.ValidationError
	if errors.As(err, &verr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)

		if encErr := json.NewEncoder(w).Encode(validationResponse{Errors: verr.Fields}); encErr != nil {
			slog.Error("failed to encode response", "error", encErr)
		}

		return
	}

	switch {
	case errors.Is(err, borrow.ErrNotFound):
		http.Error(w, "borrow request not found", http.StatusNotFound)
	case errors.Is(err, borrow.ErrInvalidState), errors.Is(err, borrow.ErrCopyUnavailable):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
