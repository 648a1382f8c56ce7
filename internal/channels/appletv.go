package channels

import (
	"regexp"

	"github.com/tapdeck/tapdeck/internal/command"
	"github.com/tapdeck/tapdeck/internal/models"
)

// Apple TV ids are umc.cmc.* tokens; the path segment before the slug
// names the media type.
var appleTVPattern = regexp.MustCompile(`tv\.apple\.com/(?:[a-z]{2}/)?(movie|show|episode)/(?:[^/\s"]+/)?(umc\.cmc\.[a-z0-9]+)`)

// NewAppleTV returns the Apple TV plugin.
func NewAppleTV() *Streaming {
	s := &Streaming{
		ChannelID:     "551012",
		ChannelName:   "Apple TV",
		Domain:        "tv.apple.com",
		Pattern:       appleTVPattern,
		PostLaunchKey: command.KeySelect,
		FallbackTitle: "Apple TV title",
	}
	s.MapURL = func(matches []string, rawURL string) (models.MediaReference, bool) {
		mediaType := models.MediaTypeMovie
		switch matches[1] {
		case "show":
			mediaType = models.MediaTypeSeries
		case "episode":
			mediaType = models.MediaTypeEpisode
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
