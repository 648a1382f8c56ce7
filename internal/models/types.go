package models

import "strings"

// Media type strings embedded in launch query parameters. The set is
// open-ended: channels pass through whatever the source reported, after
// normalization.
const (
	MediaTypeMovie   = "movie"
	MediaTypeSeries  = "series"
	MediaTypeEpisode = "episode"
)

// NormalizeMediaType lower-cases a media type and defaults it to "movie"
// when empty, so upstream casing never leaks into a device query string.
func NormalizeMediaType(mediaType string) string {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType == "" {
		return MediaTypeMovie
	}
	return mediaType
}

// SourceWebSearch is the result source name used for hits coming from the
// web-search provider rather than a channel's native search.
const SourceWebSearch = "web"
