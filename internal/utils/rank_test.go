package utils

import (
	"testing"

	"github.com/tapdeck/tapdeck/internal/models"
)

func titles(results []models.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Title
	}
	return out
}

func TestRankBySimilaritySubstringFirst(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Something Else Entirely"},
		{Title: "The Thing (1982)"},
		{Title: "Swamp Thing"},
	}

	ranked := RankBySimilarity(results, "the thing")

	if ranked[0].Title != "The Thing (1982)" {
		t.Errorf("Substring match should rank first, got %v", titles(ranked))
	}
}

func TestRankBySimilarityEditDistance(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Alignment"},
		{Title: "Alian"}, // closest to the query
	}

	ranked := RankBySimilarity(results, "alien")

	if ranked[0].Title != "Alian" {
		t.Errorf("Lower edit distance should rank first, got %v", titles(ranked))
	}
}

func TestRankBySimilarityStable(t *testing.T) {
	results := []models.SearchResult{
		{Title: "The Thing", Source: "web"},
		{Title: "The Thing", Source: "Netflix"},
	}

	ranked := RankBySimilarity(results, "the thing")

	if ranked[0].Source != "web" || ranked[1].Source != "Netflix" {
		t.Error("Equal titles should keep their input order")
	}
}

func TestRankBySimilarityEmptyQuery(t *testing.T) {
	results := []models.SearchResult{
		{Title: "B"},
		{Title: "A"},
	}

	ranked := RankBySimilarity(results, "  ")

	if ranked[0].Title != "B" {
		t.Error("Empty query should leave order untouched")
	}
}

func TestRankBySimilarityDoesNotMutateInput(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Zebra"},
		{Title: "exact match"},
	}

	RankBySimilarity(results, "exact match")

	if results[0].Title != "Zebra" {
		t.Error("Input slice must not be reordered")
	}
}
