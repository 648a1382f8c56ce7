package channels

import (
	"regexp"

	"github.com/tapdeck/tapdeck/internal/command"
)

// Netflix deep links land on a preview screen with playback paused, so
// the post-launch key is Play rather than Select.
var netflixPattern = regexp.MustCompile(`netflix\.com/(?:[a-z]{2}(?:-[A-Za-z]{2})?/)?(?:watch|title)/(\d+)`)

// NewNetflix returns the Netflix plugin.
func NewNetflix() *Streaming {
	return &Streaming{
		ChannelID:     "12",
		ChannelName:   "Netflix",
		Domain:        "netflix.com",
		Pattern:       netflixPattern,
		PostLaunchKey: command.KeyPlay,
		FallbackTitle: "Netflix title",
	}
}
