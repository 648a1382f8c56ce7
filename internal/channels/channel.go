// Package channels holds one plugin per streaming service. A plugin turns
// a media reference into the remote-control command that starts playback
// on its service, recognizes its own URLs in web-search hits, and exposes
// native search when the service has an API for it.
package channels

import (
	"context"
	"fmt"

	"github.com/tapdeck/tapdeck/internal/command"
	"github.com/tapdeck/tapdeck/internal/models"
)

// Channel is the capability set implemented once per streaming service.
type Channel interface {
	// ID is the stable channel id the device uses in launch URLs.
	ID() string
	// Name is the human-readable service name, used as a result source.
	Name() string
	// SearchDomain is the public domain used to scope web searches.
	// Empty means private server: never leaked into a public query.
	SearchDomain() string

	// BuildCommand turns a reference into a playback command. It is
	// deterministic and performs no I/O.
	BuildCommand(ref models.MediaReference) command.PlaybackCommand

	// Search queries the channel's native search API. Channels without
	// one return an empty result set, never an error.
	Search(ctx context.Context, query string) ([]models.MediaReference, error)

	// ExtractFromURL applies the channel's URL pattern to a search hit.
	// Title and description are available as additional filters for
	// channels whose hosting domain is shared with non-video content.
	ExtractFromURL(rawURL, title, description string) (models.MediaReference, bool)
}

// Registry is the read-only set of registered channels. It is built once
// at startup and safe for unsynchronized concurrent reads.
type Registry struct {
	ordered []Channel
	byID    map[string]Channel
}

// NewRegistry builds a registry. Registration order matters: web-search
// hits are offered to each channel's extractor in this order, first
// match wins.
func NewRegistry(chans ...Channel) (*Registry, error) {
	r := &Registry{byID: make(map[string]Channel, len(chans))}
	for _, ch := range chans {
		if _, dup := r.byID[ch.ID()]; dup {
			return nil, fmt.Errorf("duplicate channel id %q (%s)", ch.ID(), ch.Name())
		}
		r.byID[ch.ID()] = ch
		r.ordered = append(r.ordered, ch)
	}
	return r, nil
}

// Get returns the channel registered under id.
func (r *Registry) Get(id string) (Channel, bool) {
	ch, ok := r.byID[id]
	return ch, ok
}

// All returns the channels in registration order.
func (r *Registry) All() []Channel {
	return r.ordered
}

// Len returns the number of registered channels.
func (r *Registry) Len() int {
	return len(r.ordered)
}
