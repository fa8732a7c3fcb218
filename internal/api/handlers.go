package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/routinely/routinely/internal/logger"
	"github.com/routinely/routinely/internal/store"
)

// paginationParams are the limit/offset query parameters.
type paginationParams struct {
	Limit  int
	Offset int
}

// paginatedResponse wraps a page of results with its metadata.
type paginatedResponse struct {
	Data    any  `json:"data"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func parsePagination(r *http.Request) paginationParams {
	const (
		defaultLimit = 100
		maxLimit     = 1000
	)

	p := paginationParams{Limit: defaultLimit}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = min(n, maxLimit)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	return p
}

// page slices one limit/offset page out of items.
func page[T any](items []T, p paginationParams) paginatedResponse {
	total := len(items)
	start := min(p.Offset, total)
	end := min(start+p.Limit, total)

	return paginatedResponse{
		Data:    items[start:end],
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: end < total,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, page(s.coord.Suggestions(), parsePagination(r)))
}

func (s *Server) handleStale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, page(s.coord.Stale(), parsePagination(r)))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	lastRun := ""
	if t := s.coord.LastRun(); !t.IsZero() {
		lastRun = t.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions":       len(s.coord.Suggestions()),
		"stale_automations": len(s.coord.Stale()),
		"last_run":          lastRun,
	})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = store.KindSuggestion
	}
	if kind != store.KindSuggestion && kind != store.KindStale {
		writeError(w, http.StatusBadRequest, "kind must be \"suggestion\" or \"stale\"")
		return
	}

	if err := s.coord.Dismiss(id, kind); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"dismissed": id, "kind": kind})
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.coord.Restore(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"restored": id})
}

func (s *Server) handleClearDismissals(w http.ResponseWriter, r *http.Request) {
	if err := s.coord.ClearDismissals(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
