package channels

import (
	"testing"

	"github.com/tapdeck/tapdeck/internal/models"
)

func TestJellyfinBuildCommandIsDeepLink(t *testing.T) {
	// Extraction and command building never touch the client
	jf := NewJellyfin(nil)

	cmd := jf.BuildCommand(models.MediaReference{
		ChannelID: jf.ID(),
		ContentID: "f27caa37e5142225cceded48f6553502",
	})

	if cmd.DeepLink == nil {
		t.Fatal("Jellyfin should build a deep link")
	}
	if cmd.DeepLink.ChannelID != "592369" {
		t.Errorf("Channel id mismatch: %s", cmd.DeepLink.ChannelID)
	}
	if cmd.DeepLink.Params != "Command=PlayNow&ItemIds=f27caa37e5142225cceded48f6553502" {
		t.Errorf("Params mismatch: %s", cmd.DeepLink.Params)
	}
}

func TestJellyfinExtractFromURL(t *testing.T) {
	jf := NewJellyfin(nil)

	url := "https://media.example.lan/web/index.html#!/details?id=f27caa37e5142225cceded48f6553502"
	ref, ok := jf.ExtractFromURL(url, "The Thing", "")
	if !ok {
		t.Fatal("Expected details URL to match")
	}
	if ref.ContentID != "f27caa37e5142225cceded48f6553502" {
		t.Errorf("Content id mismatch: %s", ref.ContentID)
	}
	if ref.Title != "The Thing" {
		t.Errorf("Title mismatch: %s", ref.Title)
	}

	if _, ok := jf.ExtractFromURL("https://media.example.lan/web/index.html#!/home.html", "", ""); ok {
		t.Error("Non-details URL should not match")
	}
}

func TestJellyfinSearchDomainIsPrivate(t *testing.T) {
	if domain := NewJellyfin(nil).SearchDomain(); domain != "" {
		t.Errorf("Private server must not expose a search domain, got %q", domain)
	}
}
