package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
)

const maxBodyBytes = 1 << 16

// Searcher resolves a query to box score links.
type Searcher interface {
	Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Handler contains dependencies for HTTP handlers
type Handler struct {
	searcher Searcher
	checks   map[string]HealthCheck
	logger   *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(searcher Searcher, checks map[string]HealthCheck, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{searcher: searcher, checks: checks, logger: logger}
}

// HealthCheck handles health check requests. Optional dependencies that fail
// turn the status to degraded with a 503.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "degraded"
	}

	respondJSON(w, status, map[string]interface{}{
		"status":  state,
		"service": "boxfinder",
		"checks":  checks,
	})
}

// SearchPost handles POST /api/v1/search with a JSON SearchQuery body
func (h *Handler) SearchPost(w http.ResponseWriter, r *http.Request) {
	var q domain.SearchQuery
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&q); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.search(w, r, q)
}

// SearchGet handles GET /api/v1/search?teamName=&playerName=&gameDate=
func (h *Handler) SearchGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	h.search(w, r, domain.SearchQuery{
		PlayerName: params.Get("playerName"),
		TeamName:   params.Get("teamName"),
		GameDate:   params.Get("gameDate"),
	})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, q domain.SearchQuery) {
	result, err := h.searcher.Search(r.Context(), q)
	if err != nil {
		var verrs domain.ValidationErrors
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verrs):
			respondValidation(w, verrs.Fields())
		case errors.As(err, &verr):
			respondValidation(w, map[string]string{verr.Field: verr.Message})
		default:
			RequestLogger(r.Context(), h.logger).Error("search failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Failed to resolve box score links", nil)
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}

// respondValidation writes a 400 naming each invalid field
func respondValidation(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "Invalid search query",
		"status": http.StatusBadRequest,
		"fields": fields,
	})
}
