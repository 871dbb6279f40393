package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lamdn/circura/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/policy", h.policy)
	r.Put("/{key}", h.set)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	values, err := h.svc.All(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(values); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type policyResponse struct {
	FineRatePercent  float64 `json:"fine_rate_percent"`
	MaxBorrowDays    int     `json:"max_borrow_days"`
	MaxBooksPerUser  int     `json:"max_books_per_user"`
	MinDepositAmount int64   `json:"min_deposit_amount"`
}

// policy renders the parsed circulation policy with defaults applied, as
// opposed to the raw key/value list.
func (h *Handler) policy(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Policy(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	err = json.NewEncoder(w).Encode(policyResponse{
		FineRatePercent:  p.FineRatePercent,
		MaxBorrowDays:    p.MaxBorrowDays,
		MaxBooksPerUser:  p.MaxBooksPerUser,
		MinDepositAmount: p.MinDepositAmount,
	})
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setRequestBody struct {
	Value string `json:"value"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if !settings.KnownKey(key) {
		http.Error(w, "unknown setting key", http.StatusBadRequest)
		return
	}

	var body setRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Set(r.Context(), key, body.Value); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
