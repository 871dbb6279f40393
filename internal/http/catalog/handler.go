package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lamdn/circura/internal/catalog"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

// StaffRoutes mounts the copy-management endpoints.
func (h *Handler) StaffRoutes(r chi.Router) {
	r.Post("/", h.register)
	r.Patch("/{id}/status", h.updateStatus)
}

type copyResponse struct {
	ID         uuid.UUID          `json:"id"`
	EditionID  uuid.UUID          `json:"edition_id"`
	CopyNumber int                `json:"copy_number"`
	Status     catalog.CopyStatus `json:"status"`
	Price      int64              `json:"price"`
	BookTitle  string             `json:"book_title"`
	BookCode   string             `json:"book_code"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  *time.Time         `json:"updated_at,omitempty"`
}

func toResponse(c *catalog.Copy) copyResponse {
	return copyResponse{
		ID:         c.ID,
		EditionID:  c.EditionID,
		CopyNumber: c.CopyNumber,
		Status:     c.Status,
		Price:      c.Price,
		BookTitle:  c.BookTitle,
		BookCode:   c.BookCode,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := catalog.CopyStatus(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("edition_code"); s != "" {
		filter.EditionCode = &s
	}

	copies, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]copyResponse, len(copies))
	for i, c := range copies {
		resp[i] = toResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "copy not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type registerRequestBody struct {
	Copies []registerCopyBody `json:"copies"`
}

type registerCopyBody struct {
	EditionCode string `json:"edition_code"`
	CopyNumber  int    `json:"copy_number"`
	Price       int64  `json:"price"`
}

type rowFailureResponse struct {
	EditionCode string `json:"edition_code"`
	CopyNumber  int    `json:"copy_number"`
	Reason      string `json:"reason"`
}

type registerResultResponse struct {
	Created []copyResponse       `json:"created"`
	Failed  []rowFailureResponse `json:"failed"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var body registerRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]catalog.CreateParams, len(body.Copies))
	for i, c := range body.Copies {
		params[i] = catalog.CreateParams{
			EditionCode: c.EditionCode,
			CopyNumber:  c.CopyNumber,
			Price:       c.Price,
		}
	}

	result, err := h.svc.RegisterBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeRegisterResult(w, result)
}

type updateStatusBody struct {
	Status catalog.CopyStatus `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var body updateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, body.Status); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "copy not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeRegisterResult renders the created/failed breakdown with 201 when
// everything landed and 207 when some rows failed.
func writeRegisterResult(w http.ResponseWriter, result *catalog.RegisterResult) {
	resp := registerResultResponse{
		Created: make([]copyResponse, len(result.Created)),
		Failed:  make([]rowFailureResponse, len(result.Failed)),
	}

	for i, c := range result.Created {
		resp.Created[i] = toResponse(c)
	}

	for i, f := range result.Failed {
		resp.Failed[i] = rowFailureResponse{
			EditionCode: f.Params.EditionCode,
			CopyNumber:  f.Params.CopyNumber,
			Reason:      f.Reason,
		}
	}

	status := http.StatusCreated
	if len(resp.Failed) > 0 {
		status = http.StatusMultiStatus
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
