package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/controllers"
	"github.com/tapdeck/tapdeck/internal/models"
)

// SearchHandler handles aggregated search requests
type SearchHandler struct {
	searchCtrl *controllers.SearchController
	logger     *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchCtrl *controllers.SearchController, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searchCtrl: searchCtrl,
		logger:     logger,
	}
}

// searchResponse wraps the result list so zero results is still an
// explicit, successful answer.
type searchResponse struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []models.SearchResult `json:"results"`
}

// ServeHTTP handles GET /api/search?q=...&limit=...
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results := h.searchCtrl.Search(r.Context(), query, limit)
	if results == nil {
		results = []models.SearchResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(searchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}
