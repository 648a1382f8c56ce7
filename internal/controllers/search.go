package controllers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/channels"
	"github.com/tapdeck/tapdeck/internal/config"
	"github.com/tapdeck/tapdeck/internal/models"
	"github.com/tapdeck/tapdeck/internal/services/websearch"
	"github.com/tapdeck/tapdeck/internal/utils"
)

// WebSearcher is the slice of the web-search client the aggregator uses.
type WebSearcher interface {
	Search(ctx context.Context, query string, count int) ([]websearch.Hit, error)
}

// SearchController aggregates content discovery: one scoped web search
// routed through the channel extractors, plus every channel's native
// search, merged, deduplicated and ranked. A provider failure contributes
// zero results; the aggregate never fails because of one provider.
type SearchController struct {
	registry        *channels.Registry
	web             WebSearcher // nil when no provider is configured
	blacklist       *utils.Blacklist
	cache           *gocache.Cache
	providerTimeout time.Duration
	maxResults      int
	logger          *logrus.Logger
}

// NewSearchController creates a new search controller. web may be nil,
// in which case aggregation covers native channel search only.
func NewSearchController(
	registry *channels.Registry,
	web WebSearcher,
	blacklist *utils.Blacklist,
	cfg *config.Config,
	logger *logrus.Logger,
) *SearchController {
	ttl := time.Duration(cfg.SearchCacheTTLMinutes) * time.Minute
	return &SearchController{
		registry:        registry,
		web:             web,
		blacklist:       blacklist,
		cache:           gocache.New(ttl, 2*ttl),
		providerTimeout: time.Duration(cfg.SearchTimeoutSeconds) * time.Second,
		maxResults:      cfg.SearchMaxResults,
		logger:          logger,
	}
}

// Search fans out to all providers and returns the merged, deduplicated,
// ranked results. Zero results is a successful empty response.
func (c *SearchController) Search(ctx context.Context, query string, limit int) []models.SearchResult {
	if limit <= 0 || limit > c.maxResults {
		limit = c.maxResults
	}

	cacheKey := fmt.Sprintf("%s|%d", query, limit)
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]models.SearchResult)
	}

	// Slot 0 is the web provider, then one slot per channel in
	// registration order, so the merge is deterministic regardless of
	// which provider answers first.
	chans := c.registry.All()
	buckets := make([][]models.SearchResult, 1+len(chans))

	var wg sync.WaitGroup
	if c.web != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buckets[0] = c.searchWeb(ctx, query, limit)
		}()
	}
	for i, channel := range chans {
		wg.Add(1)
		go func(slot int, channel channels.Channel) {
			defer wg.Done()
			buckets[slot] = c.searchChannel(ctx, channel, query)
		}(1+i, channel)
	}
	wg.Wait()

	merged := c.merge(buckets)
	merged = c.blacklist.FilterResults(merged)
	merged = utils.RankBySimilarity(merged, query)
	if len(merged) > limit {
		merged = merged[:limit]
	}

	c.logger.WithFields(logrus.Fields{
		"query":   query,
		"results": len(merged),
	}).Info("Search completed")

	c.cache.Set(cacheKey, merged, gocache.DefaultExpiration)
	return merged
}

// ScopedQuery builds the public web query: the free text plus OR-ed
// site: filters from every registered channel's public domain. Private
// channels (empty domain) are never leaked into the query.
func (c *SearchController) ScopedQuery(query string) string {
	var filters []string
	for _, channel := range c.registry.All() {
		if domain := channel.SearchDomain(); domain != "" {
			filters = append(filters, "site:"+domain)
		}
	}
	if len(filters) == 0 {
		return query
	}
	return query + " (" + strings.Join(filters, " OR ") + ")"
}

func (c *SearchController) searchWeb(ctx context.Context, query string, limit int) []models.SearchResult {
	ctx, cancel := context.WithTimeout(ctx, c.providerTimeout)
	defer cancel()

	hits, err := c.web.Search(ctx, c.ScopedQuery(query), limit)
	if err != nil {
		c.logger.WithError(err).Warn("Web search failed, contributing zero results")
		return nil
	}

	var results []models.SearchResult
	for _, hit := range hits {
		if hit.URL == "" {
			continue
		}

		// First extractor match wins; hits matching no channel are
		// dropped silently.
		for _, channel := range c.registry.All() {
			ref, ok := channel.ExtractFromURL(hit.URL, hit.Title, hit.Description)
			if !ok {
				continue
			}
			results = append(results, enrichFromHit(ref, hit))
			break
		}
	}
	return results
}

// enrichFromHit overlays the web hit's metadata on the extracted
// reference: the plugin only supplies the structural id, the web search
// supplies the rich fields.
func enrichFromHit(ref models.MediaReference, hit websearch.Hit) models.SearchResult {
	if hit.Title != "" {
		ref.Title = hit.Title
	}
	if hit.Description != "" {
		ref.Metadata.Description = hit.Description
	}
	if hit.Thumbnail != "" {
		ref.Metadata.ImageURL = hit.Thumbnail
	}
	ref.Metadata.SourceURL = hit.URL

	return models.SearchResult{
		Source:      models.SourceWebSearch,
		Title:       ref.Title,
		URL:         hit.URL,
		Description: ref.Metadata.Description,
		ImageURL:    ref.Metadata.ImageURL,
		Ref:         ref,
	}
}

func (c *SearchController) searchChannel(ctx context.Context, channel channels.Channel, query string) []models.SearchResult {
	ctx, cancel := context.WithTimeout(ctx, c.providerTimeout)
	defer cancel()

	refs, err := channel.Search(ctx, query)
	if err != nil {
		c.logger.WithError(err).WithField("channel", channel.Name()).
			Warn("Native search failed, contributing zero results")
		return nil
	}

	results := make([]models.SearchResult, 0, len(refs))
	for _, ref := range refs {
		results = append(results, models.SearchResult{
			Source:      channel.Name(),
			Title:       ref.Title,
			URL:         ref.Metadata.SourceURL,
			Description: ref.Metadata.Description,
			ImageURL:    ref.Metadata.ImageURL,
			Ref:         ref,
		})
	}
	return results
}

// merge flattens the provider buckets in order and collapses duplicates,
// keeping the first occurrence (and its metadata).
func (c *SearchController) merge(buckets [][]models.SearchResult) []models.SearchResult {
	var merged []models.SearchResult
	seen := make(map[string]bool)

	for _, bucket := range buckets {
		for _, result := range bucket {
			key := result.DedupKey()
			if key != "" {
				if seen[key] {
					continue
				}
				seen[key] = true
			}
			merged = append(merged, result)
		}
	}
	return merged
}
