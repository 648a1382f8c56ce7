package channels

import (
	"context"
	"net/url"
	"regexp"
	"time"

	"github.com/tapdeck/tapdeck/internal/command"
	"github.com/tapdeck/tapdeck/internal/models"
)

// DefaultPostLaunchWait is the observed minimum for a channel's
// profile-selection or confirmation screen to render after launch.
// Calibrated against device behavior, not a protocol guarantee; override
// per channel or from config when firmware updates shift it.
const DefaultPostLaunchWait = 2 * time.Second

// Streaming is the shared plugin for the majority of channels, which all
// follow one pattern: deep-link launch, wait for the confirmation screen,
// press a single key. Channels parameterize the post-launch key, the URL
// pattern, and a fallback title; channels whose media-type inference is
// non-trivial supply MapURL.
type Streaming struct {
	ChannelID     string
	ChannelName   string
	Domain        string
	Pattern       *regexp.Regexp // first capture group is the content id
	PostLaunchKey string
	FallbackTitle string

	// PostLaunchWait overrides DefaultPostLaunchWait when non-zero.
	PostLaunchWait time.Duration

	// MapURL, when set, replaces the default match-to-reference mapping.
	// It receives the submatches of Pattern and the full URL.
	MapURL func(matches []string, rawURL string) (models.MediaReference, bool)

	// AcceptHit, when set, filters web-search hits before the pattern is
	// tried. Used by channels sharing a hosting domain with non-video
	// content (e.g. a marketplace).
	AcceptHit func(title, description string) bool
}

func (s *Streaming) ID() string           { return s.ChannelID }
func (s *Streaming) Name() string         { return s.ChannelName }
func (s *Streaming) SearchDomain() string { return s.Domain }

// BuildCommand produces the launch > wait > press sequence shared by all
// template channels.
func (s *Streaming) BuildCommand(ref models.MediaReference) command.PlaybackCommand {
	params := url.Values{}
	params.Set("contentId", ref.ContentID)
	params.Set("mediaType", models.NormalizeMediaType(ref.MediaType))

	wait := s.PostLaunchWait
	if wait <= 0 {
		wait = DefaultPostLaunchWait
	}

	return command.NewSequence(
		command.Launch{ChannelID: s.ChannelID, Params: params.Encode()},
		command.Wait{Duration: wait},
		command.Press{Key: s.PostLaunchKey, Count: 1},
	)
}

// Search returns no results: template channels have no native search API.
func (s *Streaming) Search(ctx context.Context, query string) ([]models.MediaReference, error) {
	return nil, nil
}

// ExtractFromURL matches the channel's URL pattern against a hit.
func (s *Streaming) ExtractFromURL(rawURL, title, description string) (models.MediaReference, bool) {
	if s.AcceptHit != nil && !s.AcceptHit(title, description) {
		return models.MediaReference{}, false
	}

	matches := s.Pattern.FindStringSubmatch(rawURL)
	if matches == nil {
		return models.MediaReference{}, false
	}

	if s.MapURL != nil {
		return s.MapURL(matches, rawURL)
	}

	return models.MediaReference{
		ChannelID: s.ChannelID,
		ContentID: matches[1],
		MediaType: models.MediaTypeMovie,
		Title:     s.FallbackTitle,
	}, true
}
