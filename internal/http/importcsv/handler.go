package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lamdn/circura/internal/catalog"
	"github.com/lamdn/circura/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	catalogSvc *catalog.Service
}

func NewHandler(importSvc *importer.Service, catalogSvc *catalog.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		catalogSvc: catalogSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type createdCopyResponse struct {
	ID         uuid.UUID `json:"id"`
	BookCode   string    `json:"book_code"`
	CopyNumber int       `json:"copy_number"`
	Price      int64     `json:"price"`
}

type rowFailureResponse struct {
	EditionCode string `json:"edition_code"`
	CopyNumber  int    `json:"copy_number"`
	Reason      string `json:"reason"`
}

type importResponse struct {
	Imported int                   `json:"imported"`
	Created  []createdCopyResponse `json:"created"`
	Failed   []rowFailureResponse  `json:"failed"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		http.Error(w, "source field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.catalogSvc.RegisterBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := importResponse{
		Imported: len(result.Created),
		Created:  make([]createdCopyResponse, 0, len(result.Created)),
		Failed:   make([]rowFailureResponse, 0, len(result.Failed)),
	}

	for _, c := range result.Created {
		resp.Created = append(resp.Created, createdCopyResponse{
			ID:         c.ID,
			BookCode:   c.BookCode,
			CopyNumber: c.CopyNumber,
			Price:      c.Price,
		})
	}

	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, rowFailureResponse{
			EditionCode: f.Params.EditionCode,
			CopyNumber:  f.Params.CopyNumber,
			Reason:      f.Reason,
		})
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
