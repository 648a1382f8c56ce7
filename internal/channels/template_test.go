package channels

import (
	"testing"
	"time"

	"github.com/tapdeck/tapdeck/internal/command"
	"github.com/tapdeck/tapdeck/internal/models"
)

func allStreamingChannels() []*Streaming {
	return []*Streaming{
		NewNetflix(),
		NewDisneyPlus(),
		NewPrimeVideo(),
		NewYouTube(),
		NewHulu(),
		NewAppleTV(),
		NewMax(),
	}
}

// Every template channel builds the same shape: launch, wait, one key.
func TestTemplateCommandShape(t *testing.T) {
	ref := models.MediaReference{ContentID: "any-id", MediaType: "movie"}

	for _, ch := range allStreamingChannels() {
		cmd := ch.BuildCommand(ref)

		if cmd.DeepLink != nil {
			t.Errorf("%s: template channel should not build a deep link", ch.Name())
			continue
		}
		if len(cmd.Sequence) != 3 {
			t.Errorf("%s: expected 3 actions, got %d", ch.Name(), len(cmd.Sequence))
			continue
		}

		launch, ok := cmd.Sequence[0].(command.Launch)
		if !ok {
			t.Errorf("%s: first action should be Launch", ch.Name())
		} else if launch.ChannelID != ch.ID() {
			t.Errorf("%s: launch targets channel %s", ch.Name(), launch.ChannelID)
		}

		wait, ok := cmd.Sequence[1].(command.Wait)
		if !ok {
			t.Errorf("%s: second action should be Wait", ch.Name())
		} else if wait.Duration != DefaultPostLaunchWait {
			t.Errorf("%s: expected default post-launch wait, got %s", ch.Name(), wait.Duration)
		}

		press, ok := cmd.Sequence[2].(command.Press)
		if !ok {
			t.Errorf("%s: third action should be Press", ch.Name())
		} else {
			if press.Key != ch.PostLaunchKey {
				t.Errorf("%s: expected key %s, got %s", ch.Name(), ch.PostLaunchKey, press.Key)
			}
			if press.Count != 1 {
				t.Errorf("%s: expected single press, got %d", ch.Name(), press.Count)
			}
		}
	}
}

func TestNetflixBuildCommand(t *testing.T) {
	ref := models.MediaReference{
		ChannelID: "12",
		ContentID: "81444554",
		MediaType: "movie",
	}

	cmd := NewNetflix().BuildCommand(ref)

	if len(cmd.Sequence) != 3 {
		t.Fatalf("Expected 3 actions, got %d", len(cmd.Sequence))
	}

	launch := cmd.Sequence[0].(command.Launch)
	if launch.ChannelID != "12" {
		t.Errorf("Expected channel 12, got %s", launch.ChannelID)
	}
	if launch.Params != "contentId=81444554&mediaType=movie" {
		t.Errorf("Params mismatch: %s", launch.Params)
	}

	wait := cmd.Sequence[1].(command.Wait)
	if wait.Duration != 2*time.Second {
		t.Errorf("Expected 2s wait, got %s", wait.Duration)
	}

	press := cmd.Sequence[2].(command.Press)
	if press.Key != command.KeyPlay || press.Count != 1 {
		t.Errorf("Expected single Play press, got %sx%d", press.Key, press.Count)
	}
}

// Upstream search results report media types with arbitrary casing; the
// query string must not.
func TestBuildCommandNormalizesMediaType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SERIES", "mediaType=series"},
		{"Movie", "mediaType=movie"},
		{"", "mediaType=movie"},
		{"Episode", "mediaType=episode"},
	}

	for _, tt := range tests {
		cmd := NewDisneyPlus().BuildCommand(models.MediaReference{
			ContentID: "f63db666-b097-4c61-99c1-b778de2d4ae1",
			MediaType: tt.input,
		})
		launch := cmd.Sequence[0].(command.Launch)
		if !containsParam(launch.Params, tt.want) {
			t.Errorf("mediaType %q: expected params to contain %q, got %q", tt.input, tt.want, launch.Params)
		}
	}
}

func containsParam(params, want string) bool {
	for i := 0; i+len(want) <= len(params); i++ {
		if params[i:i+len(want)] == want {
			return true
		}
	}
	return false
}

func TestPostLaunchWaitOverride(t *testing.T) {
	ch := NewNetflix()
	ch.PostLaunchWait = 3500 * time.Millisecond

	cmd := ch.BuildCommand(models.MediaReference{ContentID: "81444554"})
	wait := cmd.Sequence[1].(command.Wait)
	if wait.Duration != 3500*time.Millisecond {
		t.Errorf("Expected overridden wait, got %s", wait.Duration)
	}
}
