package utils

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tapdeck/tapdeck/internal/models"
)

// RankBySimilarity sorts search results by how closely their title
// matches the query:
// 1. Titles containing the query as a substring rank first
// 2. Then by edit distance between title and query (lower is better)
// The sort is stable so deduplication's first-seen order breaks ties.
func RankBySimilarity(results []models.SearchResult, query string) []models.SearchResult {
	sorted := make([]models.SearchResult, len(results))
	copy(sorted, results)

	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		titleI := strings.ToLower(sorted[i].Title)
		titleJ := strings.ToLower(sorted[j].Title)

		containsI := strings.Contains(titleI, queryLower)
		containsJ := strings.Contains(titleJ, queryLower)
		if containsI != containsJ {
			return containsI
		}

		return levenshtein.ComputeDistance(titleI, queryLower) <
			levenshtein.ComputeDistance(titleJ, queryLower)
	})

	return sorted
}
