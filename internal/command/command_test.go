package command

import (
	"net/url"
	"testing"
	"time"
)

func TestNewDeepLinkEncodesParams(t *testing.T) {
	params := url.Values{}
	params.Set("Command", "PlayNow")
	params.Set("ItemIds", "abc123")

	cmd := NewDeepLink("592369", params)

	if cmd.DeepLink == nil {
		t.Fatal("Expected deep link variant to be set")
	}
	if len(cmd.Sequence) != 0 {
		t.Error("Deep link command should not carry a sequence")
	}
	if cmd.DeepLink.ChannelID != "592369" {
		t.Errorf("Channel id mismatch: %s", cmd.DeepLink.ChannelID)
	}
	// url.Values.Encode sorts keys
	if cmd.DeepLink.Params != "Command=PlayNow&ItemIds=abc123" {
		t.Errorf("Params mismatch: %s", cmd.DeepLink.Params)
	}
}

func TestIsZero(t *testing.T) {
	if !(PlaybackCommand{}).IsZero() {
		t.Error("Empty command should be zero")
	}
	if NewSequence(Launch{ChannelID: "12"}).IsZero() {
		t.Error("Sequence command should not be zero")
	}
	if NewDeepLink("12", url.Values{}).IsZero() {
		t.Error("Deep link command should not be zero")
	}
}

func TestDescribe(t *testing.T) {
	cmd := NewSequence(
		Launch{ChannelID: "12", Params: "contentId=81444554&mediaType=movie"},
		Wait{Duration: 2 * time.Second},
		Press{Key: KeyPlay, Count: 1},
	)

	want := "launch 12?contentId=81444554&mediaType=movie > wait 2s > press Play"
	if got := Describe(cmd); got != want {
		t.Errorf("Describe mismatch:\ngot  %s\nwant %s", got, want)
	}
}

func TestDescribeRepeatedPress(t *testing.T) {
	cmd := NewSequence(
		Launch{ChannelID: "837"},
		Press{Key: KeyDown, Count: 3},
		Type{Text: "ok"},
	)

	want := `launch 837 > press Downx3 > type "ok"`
	if got := Describe(cmd); got != want {
		t.Errorf("Describe mismatch:\ngot  %s\nwant %s", got, want)
	}
}
