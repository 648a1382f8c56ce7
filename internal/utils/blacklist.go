package utils

import (
	"bufio"
	"os"
	"strings"

	"github.com/tapdeck/tapdeck/internal/models"
)

// Blacklist holds terms that remove unwanted hits from aggregated search
// results (screeners, fan edits, whole franchises someone is tired of).
type Blacklist struct {
	terms []string
}

// LoadBlacklist loads blacklist terms from a file, one per line, # for
// comments. A missing file yields an empty blacklist.
func LoadBlacklist(path string) (*Blacklist, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Blacklist{terms: []string{}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term != "" && !strings.HasPrefix(term, "#") {
			terms = append(terms, strings.ToLower(term))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Blacklist{terms: terms}, nil
}

// IsBlacklisted checks if a title matches any blacklist term
// Returns (isBlacklisted, matchedTerm)
func (b *Blacklist) IsBlacklisted(title string) (bool, string) {
	titleLower := strings.ToLower(title)

	for _, term := range b.terms {
		if strings.Contains(titleLower, term) {
			return true, term
		}
	}

	return false, ""
}

// FilterResults drops blacklisted entries from a result list, preserving
// order.
func (b *Blacklist) FilterResults(results []models.SearchResult) []models.SearchResult {
	if len(b.terms) == 0 {
		return results
	}

	kept := results[:0:0]
	for _, r := range results {
		if blacklisted, _ := b.IsBlacklisted(r.Title); blacklisted {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
