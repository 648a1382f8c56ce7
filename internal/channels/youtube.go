package channels

import (
	"regexp"

	"github.com/tapdeck/tapdeck/internal/command"
)

var youtubePattern = regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^"\s&]*&)*v=|youtu\.be/)([\w-]{11})`)

// NewYouTube returns the YouTube plugin.
func NewYouTube() *Streaming {
	return &Streaming{
		ChannelID:     "837",
		ChannelName:   "YouTube",
		Domain:        "youtube.com",
		Pattern:       youtubePattern,
		PostLaunchKey: command.KeySelect,
		FallbackTitle: "YouTube video",
	}
}
