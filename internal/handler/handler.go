package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"skillindex/internal/domain"
	"skillindex/internal/service"
)

// IndexHandler handles category index API requests
type IndexHandler struct {
	svc    *service.IndexService
	sync   service.SyncOptions
	logger *slog.Logger
}

// NewIndexHandler creates a new index handler. opts are used for rebuilds.
func NewIndexHandler(svc *service.IndexService, opts service.SyncOptions, logger *slog.Logger) *IndexHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexHandler{svc: svc, sync: opts, logger: logger}
}

// Register adds the API routes to mux
func (h *IndexHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("GET /api/classifications", h.ListClassifications)
	mux.HandleFunc("GET /api/classifications/{id...}", h.GetClassification)
	mux.HandleFunc("POST /api/classify", h.Classify)
	mux.HandleFunc("POST /api/rebuild", h.Rebuild)
	mux.HandleFunc("GET /api/runs/latest", h.LatestRun)
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CategoryCount is one taxonomy entry with its stored classification count
type CategoryCount struct {
	Name  domain.Category `json:"name"`
	Count int             `json:"count"`
}

// CategoriesResponse lists the taxonomy in order
type CategoriesResponse struct {
	Categories []CategoryCount `json:"categories"`
	Default    domain.Category `json:"default"`
}

// maxClassifyBody caps the size of a POST /api/classify body
const maxClassifyBody = 64 << 10

// ClassifyRequest is the body of POST /api/classify.
// Description is literal text, not a file reference.
type ClassifyRequest struct {
	Source      string `json:"source"`
	SkillID     string `json:"skillId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RebuildResponse reports the outcome of a rebuild
type RebuildResponse struct {
	Run       *domain.Run `json:"run"`
	Unchanged bool        `json:"unchanged"`
}

// ListCategories returns the taxonomy with counts from the latest run
func (h *IndexHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.CategoryCounts(r.Context())
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		h.logger.Error("failed to count categories", "error", err)
		h.writeError(w, "Failed to count categories", err.Error(), http.StatusInternalServerError)
		return
	}

	resp := CategoriesResponse{
		Categories: make([]CategoryCount, 0, len(domain.PrimaryCategories)),
		Default:    domain.DefaultCategory,
	}
	for _, c := range domain.PrimaryCategories {
		resp.Categories = append(resp.Categories, CategoryCount{Name: c, Count: counts[c]})
	}

	h.writeJSON(w, resp, http.StatusOK)
}

// ListClassifications returns stored classifications, optionally filtered by ?category=
func (h *IndexHandler) ListClassifications(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		c, ok := domain.ParseCategory(raw)
		if !ok {
			h.writeError(w, "Invalid category", "unknown category "+strconv.Quote(raw), http.StatusBadRequest)
			return
		}
		category = c
	}

	records, err := h.svc.ListClassifications(r.Context(), category)
	if err != nil {
		h.writeServiceError(w, "Failed to list classifications", err)
		return
	}

	h.writeJSON(w, records, http.StatusOK)
}

// GetClassification returns the stored classification of one skill.
// Skill IDs contain slashes, so the route captures the rest of the path.
func (h *IndexHandler) GetClassification(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.writeError(w, "Invalid skill ID", "Skill ID is required", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.GetClassification(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "Failed to get classification", err)
		return
	}

	h.writeJSON(w, rec, http.StatusOK)
}

// Classify classifies an ad hoc entry without storing it
func (h *IndexHandler) Classify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxClassifyBody)

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.Source == "" && req.SkillID == "" && req.Title == "" && req.Description == "" {
		h.writeError(w, "Invalid request body", "at least one of source, skillId, title or description is required", http.StatusBadRequest)
		return
	}

	c := h.svc.ClassifyText(req.Source, req.SkillID, req.Title, req.Description)
	h.writeJSON(w, c, http.StatusOK)
}

// Rebuild runs a sync of the configured index. ?force=true ignores the fingerprint.
func (h *IndexHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	opts := h.sync
	if raw := r.URL.Query().Get("force"); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, "Invalid force flag", err.Error(), http.StatusBadRequest)
			return
		}
		opts.Force = force
	}

	res, err := h.svc.Sync(r.Context(), opts)
	if err != nil {
		if errors.Is(err, service.ErrEmptyIndex) {
			h.writeError(w, "Refusing to build", err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.writeError(w, "Failed to rebuild index", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, RebuildResponse{Run: res.Run, Unchanged: res.Unchanged}, http.StatusOK)
}

// LatestRun returns the most recent run
func (h *IndexHandler) LatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.LatestRun(r.Context())
	if err != nil {
		h.writeServiceError(w, "Failed to get latest run", err)
		return
	}

	h.writeJSON(w, run, http.StatusOK)
}

func (h *IndexHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
		return
	}
	h.logger.Error(strings.ToLower(msg), "error", err)
	h.writeError(w, msg, err.Error(), http.StatusInternalServerError)
}

func (h *IndexHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *IndexHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}
