package channels

import (
	"regexp"

	"github.com/tapdeck/tapdeck/internal/command"
)

var maxPattern = regexp.MustCompile(`(?:play\.)?max\.com/(?:movie|show|mini-series|video)s?/(?:[a-z0-9-]+/)?([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})`)

// NewMax returns the Max plugin.
func NewMax() *Streaming {
	return &Streaming{
		ChannelID:     "61322",
		ChannelName:   "Max",
		Domain:        "max.com",
		Pattern:       maxPattern,
		PostLaunchKey: command.KeySelect,
		FallbackTitle: "Max title",
	}
}
