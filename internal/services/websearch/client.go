package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/config"
)

// Hit is one raw web-search result. All fields are optional on the wire;
// unknown fields are ignored.
type Hit struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// response tolerates an absent or null results list: that is a valid
// zero-hit answer, not an error.
type response struct {
	Results []Hit `json:"results"`
}

// Client wraps the web-search provider's JSON API. The query is
// idempotent, so transient failures are retried with exponential backoff
// (unlike device keypresses, which are never retried).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new web-search client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.SearchURL == "" {
		return nil, fmt.Errorf("web-search URL is required")
	}

	return &Client{
		baseURL: cfg.SearchURL,
		apiKey:  cfg.SearchKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}, nil
}

// Search issues one query and returns the raw hits.
func (c *Client) Search(ctx context.Context, query string, count int) ([]Hit, error) {
	apiURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid web-search URL: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}
	apiURL.RawQuery = params.Encode()
	finalURL := apiURL.String()

	c.logger.WithFields(logrus.Fields{
		"query": query,
		"count": count,
	}).Debug("Performing web search")

	var hits []Hit
	operation := func() error {
		var opErr error
		hits, opErr = c.doSearch(ctx, finalURL)
		return opErr
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 8 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(hits)).Debug("Web search completed")
	return hits, nil
}

func (c *Client) doSearch(ctx context.Context, finalURL string) ([]Hit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", "tapdeck/1.0")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web-search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("web search returned status %d: %s", resp.StatusCode, string(body))
		// Client errors will not improve on retry
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to parse web-search response: %w", err))
	}

	return result.Results, nil
}
