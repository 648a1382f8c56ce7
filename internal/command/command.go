// Package command defines the playback command model: the channel plugins
// produce these values, the device executor consumes them. Keeping the
// model as pure data makes the executor agnostic to which channel built
// the command; it only ever dispatches on the shape.
package command

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Remote key names understood by the device's keypress endpoint.
const (
	KeyHome          = "Home"
	KeyUp            = "Up"
	KeyDown          = "Down"
	KeyLeft          = "Left"
	KeyRight         = "Right"
	KeySelect        = "Select"
	KeyBack          = "Back"
	KeyBackspace     = "Backspace"
	KeyPlay          = "Play"
	KeyPause         = "Pause"
	KeyRev           = "Rev"
	KeyFwd           = "Fwd"
	KeyInstantReplay = "InstantReplay"
	KeyInfo          = "Info"
	KeySearch        = "Search"
)

// PlaybackCommand is a tagged union: exactly one of DeepLink or Sequence
// is set. A deep link starts playback with a single launch request; a
// sequence scripts the remote-control steps a channel needs on top of
// its launch.
type PlaybackCommand struct {
	DeepLink *DeepLink
	Sequence []Action
}

// NewDeepLink builds a single-request command.
func NewDeepLink(channelID string, params url.Values) PlaybackCommand {
	return PlaybackCommand{DeepLink: &DeepLink{ChannelID: channelID, Params: params.Encode()}}
}

// NewSequence builds a multi-step command. The first action is always a
// Launch; plugins enforce that by construction.
func NewSequence(actions ...Action) PlaybackCommand {
	return PlaybackCommand{Sequence: actions}
}

// IsZero reports whether the command is empty (neither variant set).
func (c PlaybackCommand) IsZero() bool {
	return c.DeepLink == nil && len(c.Sequence) == 0
}

// DeepLink navigates a device directly to specific content with one
// launch request.
type DeepLink struct {
	ChannelID string
	Params    string // encoded query string
}

// Action is one remote-control step. Variants: Launch, Press, Type, Wait.
// The executor dispatches on the concrete type; adding a variant without
// teaching the executor about it is a programming error it reports.
type Action interface {
	actionName() string
}

// Launch opens a channel, optionally deep-linking via query parameters.
type Launch struct {
	ChannelID string
	Params    string // encoded query string, may be empty
}

// Press sends a named remote key Count times.
type Press struct {
	Key   string
	Count int // >= 1
}

// Type spells out text as literal keypresses.
type Type struct {
	Text string
}

// Wait suspends the sequence without touching the device.
type Wait struct {
	Duration time.Duration // >= 0
}

func (a Launch) actionName() string { return "launch" }
func (a Press) actionName() string  { return "press" }
func (a Type) actionName() string   { return "type" }
func (a Wait) actionName() string   { return "wait" }

// Name returns a short label for an action, used in errors and logs.
func Name(a Action) string {
	if a == nil {
		return "nil"
	}
	return a.actionName()
}

// Describe renders a command for logs: "deeplink 12?contentId=..." or
// "launch 12?... > wait 2s > press Play".
func Describe(c PlaybackCommand) string {
	if c.DeepLink != nil {
		return fmt.Sprintf("deeplink %s?%s", c.DeepLink.ChannelID, c.DeepLink.Params)
	}

	parts := make([]string, 0, len(c.Sequence))
	for _, a := range c.Sequence {
		switch act := a.(type) {
		case Launch:
			if act.Params != "" {
				parts = append(parts, fmt.Sprintf("launch %s?%s", act.ChannelID, act.Params))
			} else {
				parts = append(parts, "launch "+act.ChannelID)
			}
		case Press:
			if act.Count > 1 {
				parts = append(parts, fmt.Sprintf("press %sx%d", act.Key, act.Count))
			} else {
				parts = append(parts, "press "+act.Key)
			}
		case Type:
			parts = append(parts, fmt.Sprintf("type %q", act.Text))
		case Wait:
			parts = append(parts, "wait "+act.Duration.String())
		default:
			parts = append(parts, Name(a))
		}
	}
	return strings.Join(parts, " > ")
}
