package channels

import (
	"regexp"
	"strings"

	"github.com/tapdeck/tapdeck/internal/command"
	"github.com/tapdeck/tapdeck/internal/models"
)

// Disney+ play and video URLs carry a UUID content id, optionally behind
// a locale segment: disneyplus.com/play/<uuid>, disneyplus.com/en-gb/video/<uuid>.
var disneyPattern = regexp.MustCompile(`disneyplus\.com/(?:[a-z]{2}(?:-[a-z]{2})?/)?(?:play|video)/([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`)

// NewDisneyPlus returns the Disney+ plugin.
func NewDisneyPlus() *Streaming {
	s := &Streaming{
		ChannelID:     "291097",
		ChannelName:   "Disney+",
		Domain:        "disneyplus.com",
		Pattern:       disneyPattern,
		PostLaunchKey: command.KeySelect,
		FallbackTitle: "Disney+ title",
	}
	s.MapURL = func(matches []string, rawURL string) (models.MediaReference, bool) {
		mediaType := models.MediaTypeMovie
		if strings.Contains(rawURL, "/series/") {
			mediaType = models.MediaTypeSeries
		}
		return models.MediaReference{
			ChannelID: s.ChannelID,
			ContentID: matches[1],
			MediaType: mediaType,
			Title:     s.FallbackTitle,
		}, true
	}
	return s
}
