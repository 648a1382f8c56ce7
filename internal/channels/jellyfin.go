package channels

import (
	"context"
	"net/url"
	"regexp"

	"github.com/tapdeck/tapdeck/internal/command"
	"github.com/tapdeck/tapdeck/internal/models"
	"github.com/tapdeck/tapdeck/internal/services/jellyfin"
)

// jellyfinChannelID is the device channel id of the Jellyfin client app.
const jellyfinChannelID = "592369"

// The Jellyfin web UI encodes the item id in the URL fragment:
// https://host/web/index.html#!/details?id=<32 hex chars>.
var jellyfinPattern = regexp.MustCompile(`/web/(?:index\.html)?#!?/details\?(?:[^"\s&]*&)*id=([0-9a-f]{32})`)

// Jellyfin is the private media-server channel. Unlike the streaming
// template channels it supports true deep links (the device app accepts a
// PlayNow command) and real native search, and it never contributes a
// site: filter to public web queries.
type Jellyfin struct {
	client *jellyfin.Client
}

// NewJellyfin returns the Jellyfin plugin backed by the given client.
func NewJellyfin(client *jellyfin.Client) *Jellyfin {
	return &Jellyfin{client: client}
}

func (j *Jellyfin) ID() string   { return jellyfinChannelID }
func (j *Jellyfin) Name() string { return "Jellyfin" }

// SearchDomain is empty: a private server is never exposed in a public
// web-search query.
func (j *Jellyfin) SearchDomain() string { return "" }

// BuildCommand deep-links straight into playback; no navigation keys
// are needed.
func (j *Jellyfin) BuildCommand(ref models.MediaReference) command.PlaybackCommand {
	params := url.Values{}
	params.Set("Command", "PlayNow")
	params.Set("ItemIds", ref.ContentID)
	return command.NewDeepLink(jellyfinChannelID, params)
}

// Search queries the server's native search API.
func (j *Jellyfin) Search(ctx context.Context, query string) ([]models.MediaReference, error) {
	items, err := j.client.SearchItems(ctx, query, 20)
	if err != nil {
		return nil, err
	}

	refs := make([]models.MediaReference, 0, len(items))
	for _, item := range items {
		refs = append(refs, models.MediaReference{
			ChannelID: jellyfinChannelID,
			ContentID: item.ID,
			MediaType: mediaTypeForItem(item.Type),
			Title:     item.Name,
			Metadata: models.Metadata{
				Description:   item.Overview,
				ImageURL:      j.client.ImageURL(item.ID),
				ResumeSeconds: item.ResumeSeconds(),
				Rating:        item.OfficialRating,
			},
		})
	}
	return refs, nil
}

// ExtractFromURL recognizes Jellyfin web UI detail links.
func (j *Jellyfin) ExtractFromURL(rawURL, title, description string) (models.MediaReference, bool) {
	matches := jellyfinPattern.FindStringSubmatch(rawURL)
	if matches == nil {
		return models.MediaReference{}, false
	}
	return models.MediaReference{
		ChannelID: jellyfinChannelID,
		ContentID: matches[1],
		MediaType: models.MediaTypeMovie,
		Title:     title,
	}, true
}

func mediaTypeForItem(itemType string) string {
	switch itemType {
	case "Series":
		return models.MediaTypeSeries
	case "Episode":
		return models.MediaTypeEpisode
	case "Movie":
		return models.MediaTypeMovie
	}
	return models.NormalizeMediaType(itemType)
}
