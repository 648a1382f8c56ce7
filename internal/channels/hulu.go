package channels

import (
	"regexp"

	"github.com/tapdeck/tapdeck/internal/command"
	"github.com/tapdeck/tapdeck/internal/models"
)

// Hulu encodes the media type in the path: hulu.com/movie/<slug>-<uuid>
// vs hulu.com/series/<slug>-<uuid>.
var huluPattern = regexp.MustCompile(`hulu\.com/(movie|series)/(?:[a-z0-9-]+-)?([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`)

// NewHulu returns the Hulu plugin.
func NewHulu() *Streaming {
	s := &Streaming{
		ChannelID:     "2285",
		ChannelName:   "Hulu",
		Domain:        "hulu.com",
		Pattern:       huluPattern,
		PostLaunchKey: command.KeySelect,
		FallbackTitle: "Hulu title",
	}
	s.MapURL = func(matches []string, rawURL string) (models.MediaReference, bool) {
		mediaType := models.MediaTypeMovie
		if matches[1] == "series" {
			mediaType = models.MediaTypeSeries
		}
		return models.MediaReference{
			ChannelID: s.ChannelID,
			ContentID: matches[2],
			MediaType: mediaType,
			Title:     s.FallbackTitle,
		}, true
	}
	return s
}
