package channels

import (
	"regexp"
	"strings"

	"github.com/tapdeck/tapdeck/internal/command"
)

// primeMarker guards against bare amazon.com marketplace hits: the
// hosting domain is shared, so a hit is only accepted when its title
// carries the Prime Video marker.
const primeMarker = "prime video"

// Detail pages use either /gp/video/detail/<ASIN> or the generic
// /dp/<ASIN> product path.
var primePattern = regexp.MustCompile(`amazon\.[a-z.]+/(?:[^\s"?]*/)?(?:gp/video/detail|dp)/([A-Z0-9]{10})`)

// NewPrimeVideo returns the Prime Video plugin.
func NewPrimeVideo() *Streaming {
	return &Streaming{
		ChannelID:     "13",
		ChannelName:   "Prime Video",
		Domain:        "amazon.com",
		Pattern:       primePattern,
		PostLaunchKey: command.KeySelect,
		FallbackTitle: "Prime Video title",
		AcceptHit: func(title, description string) bool {
			return strings.Contains(strings.ToLower(title), primeMarker)
		},
	}
}
