package channels

import (
	"testing"

	"github.com/tapdeck/tapdeck/internal/models"
)

// Known-good URL per channel: the extracted content id must equal the id
// segment and the channel id must be the plugin's constant.
func TestExtractFromURLRoundTrip(t *testing.T) {
	tests := []struct {
		channel       Channel
		url           string
		title         string
		wantContentID string
		wantMediaType string
	}{
		{
			channel:       NewNetflix(),
			url:           "https://www.netflix.com/watch/81444554",
			wantContentID: "81444554",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewNetflix(),
			url:           "https://www.netflix.com/us/title/80100172",
			wantContentID: "80100172",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewDisneyPlus(),
			url:           "https://www.disneyplus.com/play/f63db666-b097-4c61-99c1-b778de2d4ae1",
			wantContentID: "f63db666-b097-4c61-99c1-b778de2d4ae1",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewDisneyPlus(),
			url:           "https://www.disneyplus.com/en-gb/video/2ebb07c1-72a2-4d2f-a9e3-9e8e5e37ca54",
			wantContentID: "2ebb07c1-72a2-4d2f-a9e3-9e8e5e37ca54",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewPrimeVideo(),
			url:           "https://www.amazon.com/gp/video/detail/B0B8T1JF3Y",
			title:         "Watch The Outfit | Prime Video",
			wantContentID: "B0B8T1JF3Y",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewYouTube(),
			url:           "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantContentID: "dQw4w9WgXcQ",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewYouTube(),
			url:           "https://youtu.be/dQw4w9WgXcQ",
			wantContentID: "dQw4w9WgXcQ",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewHulu(),
			url:           "https://www.hulu.com/movie/palm-springs-f70b1f18-29cd-45e2-9a24-bd1dbabb4925",
			wantContentID: "f70b1f18-29cd-45e2-9a24-bd1dbabb4925",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewHulu(),
			url:           "https://www.hulu.com/series/only-murders-in-the-building-9cf25d86-bd85-4a14-8a85-7e5e6ba2b8b0",
			wantContentID: "9cf25d86-bd85-4a14-8a85-7e5e6ba2b8b0",
			wantMediaType: models.MediaTypeSeries,
		},
		{
			channel:       NewAppleTV(),
			url:           "https://tv.apple.com/us/movie/greyhound/umc.cmc.o5z5ztufuu3uv8lx7m0jcega",
			wantContentID: "umc.cmc.o5z5ztufuu3uv8lx7m0jcega",
			wantMediaType: models.MediaTypeMovie,
		},
		{
			channel:       NewAppleTV(),
			url:           "https://tv.apple.com/us/show/severance/umc.cmc.1srk2goyh2q2zdxcx605w8vtx",
			wantContentID: "umc.cmc.1srk2goyh2q2zdxcx605w8vtx",
			wantMediaType: models.MediaTypeSeries,
		},
		{
			channel:       NewMax(),
			url:           "https://play.max.com/movie/5756c2bf-36f8-4890-b1f9-ef168f1d8e9c",
			wantContentID: "5756c2bf-36f8-4890-b1f9-ef168f1d8e9c",
			wantMediaType: models.MediaTypeMovie,
		},
	}

	for _, tt := range tests {
		ref, ok := tt.channel.ExtractFromURL(tt.url, tt.title, "")
		if !ok {
			t.Errorf("%s: no match for %s", tt.channel.Name(), tt.url)
			continue
		}
		if ref.ChannelID != tt.channel.ID() {
			t.Errorf("%s: channel id mismatch: %s", tt.channel.Name(), ref.ChannelID)
		}
		if ref.ContentID != tt.wantContentID {
			t.Errorf("%s: content id mismatch: got %s, want %s", tt.channel.Name(), ref.ContentID, tt.wantContentID)
		}
		if ref.MediaType != tt.wantMediaType {
			t.Errorf("%s: media type mismatch: got %s, want %s", tt.channel.Name(), ref.MediaType, tt.wantMediaType)
		}
	}
}

func TestExtractFromURLNoMatch(t *testing.T) {
	tests := []struct {
		channel Channel
		url     string
	}{
		{NewNetflix(), "https://www.netflix.com/browse"},
		{NewDisneyPlus(), "https://www.disneyplus.com/welcome"},
		{NewYouTube(), "https://www.youtube.com/@somechannel"},
		{NewHulu(), "https://www.hulu.com/hub/movies"},
	}

	for _, tt := range tests {
		if _, ok := tt.channel.ExtractFromURL(tt.url, "", ""); ok {
			t.Errorf("%s: unexpected match for %s", tt.channel.Name(), tt.url)
		}
	}
}

// amazon.com hosts far more than video; the Prime plugin must reject
// hits whose title lacks the Prime Video marker.
func TestPrimeVideoMarketplaceFilter(t *testing.T) {
	prime := NewPrimeVideo()
	url := "https://www.amazon.com/dp/B0B8T1JF3Y"

	if _, ok := prime.ExtractFromURL(url, "Nespresso Coffee Capsules, 50 Count", ""); ok {
		t.Error("Marketplace hit without marker should not match")
	}

	ref, ok := prime.ExtractFromURL(url, "Watch Top Gun: Maverick | Prime Video", "")
	if !ok {
		t.Fatal("Hit with Prime Video marker should match")
	}
	if ref.ContentID != "B0B8T1JF3Y" {
		t.Errorf("Content id mismatch: %s", ref.ContentID)
	}
}

func TestRegistryRejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry(NewNetflix(), NewNetflix())
	if err == nil {
		t.Fatal("Expected duplicate channel id error")
	}
}

func TestRegistryPreservesOrder(t *testing.T) {
	netflix := NewNetflix()
	disney := NewDisneyPlus()
	registry, err := NewRegistry(netflix, disney)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	all := registry.All()
	if len(all) != 2 || all[0].ID() != netflix.ID() || all[1].ID() != disney.ID() {
		t.Error("Registry should preserve registration order")
	}

	if ch, ok := registry.Get("12"); !ok || ch.Name() != "Netflix" {
		t.Error("Lookup by id failed")
	}
	if _, ok := registry.Get("99999"); ok {
		t.Error("Unknown id should not resolve")
	}
}
