package models

import "time"

// MediaReference identifies one piece of playable content on one channel.
// It is immutable once built: title edits happen on the stored record, not
// on the reference the engine consumes.
type MediaReference struct {
	ChannelID string   `json:"channelId"`
	ContentID string   `json:"contentId"` // channel-specific format: UUID, numeric id, ASIN...
	MediaType string   `json:"mediaType,omitempty"`
	Title     string   `json:"title,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty"`
}

// Metadata carries optional display and resume information alongside a
// reference. All fields may be empty.
type Metadata struct {
	Description   string `json:"description,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	SourceURL     string `json:"sourceUrl,omitempty"` // original URL the reference was extracted from
	ResumeSeconds int64  `json:"resumeSeconds,omitempty"`
	Rating        string `json:"rating,omitempty"`
}

// SearchResult is one entry of an aggregated search response.
type SearchResult struct {
	Source      string         `json:"source"` // provider name: channel name or "web"
	Title       string         `json:"title"`
	URL         string         `json:"url,omitempty"`
	Description string         `json:"description,omitempty"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Ref         MediaReference `json:"ref"`
}

// DedupKey is the composite identity used to collapse duplicate hits.
// Empty when the reference is incomplete, in which case the result is
// never collapsed with another.
func (r SearchResult) DedupKey() string {
	if r.Ref.ChannelID == "" || r.Ref.ContentID == "" {
		return ""
	}
	return r.Ref.ChannelID + "-" + r.Ref.ContentID
}

// StoredMedia is a library entry: a media reference plus the owner tag it
// was written for. The ID is opaque and generated at creation.
type StoredMedia struct {
	ID    string `boltholdKey:"ID"`
	Owner string `boltholdIndex:"Owner"` // tag owner, e.g. "living-room" or a user name

	Ref MediaReference

	CreatedAt time.Time
	UpdatedAt time.Time
}
