package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/config"
)

// Item is one entry of a Jellyfin /Items response. Only the fields the
// search mapping needs are decoded; everything else is ignored.
type Item struct {
	ID             string `json:"Id"`
	Name           string `json:"Name"`
	Type           string `json:"Type"` // "Movie", "Series", "Episode"
	Overview       string `json:"Overview"`
	ProductionYear int    `json:"ProductionYear"`
	OfficialRating string `json:"OfficialRating"`
	UserData       struct {
		PlaybackPositionTicks int64 `json:"PlaybackPositionTicks"`
	} `json:"UserData"`
}

// itemsResponse is the envelope of /Items.
type itemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}

// Client handles communication with a Jellyfin server
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new Jellyfin API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.JellyfinURL == "" {
		return nil, fmt.Errorf("jellyfin URL is required")
	}
	if cfg.JellyfinToken == "" {
		return nil, fmt.Errorf("jellyfin API token is required")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.JellyfinURL, "/"),
		token:   cfg.JellyfinToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}, nil
}

// SearchItems queries the server's native search for movies, series and
// episodes matching the term.
func (c *Client) SearchItems(ctx context.Context, term string, limit int) ([]Item, error) {
	params := url.Values{}
	params.Set("searchTerm", term)
	params.Set("Recursive", "true")
	params.Set("IncludeItemTypes", "Movie,Series,Episode")
	params.Set("Fields", "Overview")
	if limit > 0 {
		params.Set("Limit", strconv.Itoa(limit))
	}

	fullURL := c.baseURL + "/Items?" + params.Encode()
	c.logger.WithFields(logrus.Fields{
		"term":  term,
		"limit": limit,
	}).Debug("Performing Jellyfin search")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jellyfin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("jellyfin returned status %d: %s", resp.StatusCode, string(body))
	}

	var result itemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse jellyfin response: %w", err)
	}

	c.logger.WithField("count", len(result.Items)).Debug("Jellyfin search completed")
	return result.Items, nil
}

// ImageURL returns the primary image URL for an item.
func (c *Client) ImageURL(itemID string) string {
	return c.baseURL + "/Items/" + itemID + "/Images/Primary"
}

// ResumeSeconds converts an item's playback position from ticks.
func (i Item) ResumeSeconds() int64 {
	// Jellyfin ticks are 100ns
	return i.UserData.PlaybackPositionTicks / 10_000_000
}
