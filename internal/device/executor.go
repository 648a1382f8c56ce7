package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/command"
)

// Default inter-step delays. Like the post-launch wait, these are
// calibrated against observed device behavior and overridable from
// config.
const (
	DefaultKeyDelay  = 100 * time.Millisecond // lets the input buffer drain between presses
	DefaultTypeDelay = 50 * time.Millisecond  // between typed characters
)

// CommandError reports the step at which a command failed. StatusCode is
// zero for transport errors and cancellations.
type CommandError struct {
	Step       int    // 1-based action index; 1 for a deep link
	Action     string // "launch", "press", "type", "wait", "deeplink"
	StatusCode int
	Err        error
}

func (e *CommandError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("step %d (%s) failed with status %d", e.Step, e.Action, e.StatusCode)
	}
	return fmt.Sprintf("step %d (%s) failed: %v", e.Step, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Executor carries out playback commands against one device at a time.
// Actions run strictly in order: each depends on the screen state left by
// the previous one. Nothing is retried; a keypress is not idempotent and
// a retry could double-press. A half-completed sequence is an accepted,
// user-visible outcome.
type Executor struct {
	client *Client
	logger *logrus.Logger

	// Delay overrides; zero values fall back to the defaults.
	KeyDelay  time.Duration
	TypeDelay time.Duration
}

// NewExecutor creates a new command executor
func NewExecutor(client *Client, logger *logrus.Logger) *Executor {
	return &Executor{
		client:    client,
		logger:    logger,
		KeyDelay:  DefaultKeyDelay,
		TypeDelay: DefaultTypeDelay,
	}
}

// Execute runs a playback command against the device at deviceBase.
// Cancelling ctx aborts before the next step; an in-flight HTTP call is
// abandoned by the client.
func (e *Executor) Execute(ctx context.Context, cmd command.PlaybackCommand, deviceBase string) error {
	if cmd.IsZero() {
		return fmt.Errorf("empty playback command")
	}

	if cmd.DeepLink != nil {
		e.logger.WithFields(logrus.Fields{
			"device":  deviceBase,
			"command": command.Describe(cmd),
		}).Info("Executing deep link")

		if err := e.client.Launch(ctx, deviceBase, cmd.DeepLink.ChannelID, cmd.DeepLink.Params); err != nil {
			return stepError(1, "deeplink", err)
		}
		return nil
	}

	e.logger.WithFields(logrus.Fields{
		"device":  deviceBase,
		"steps":   len(cmd.Sequence),
		"command": command.Describe(cmd),
	}).Info("Executing action sequence")

	return e.Run(ctx, cmd.Sequence, deviceBase)
}

// Run executes a raw action list in order, aborting on the first failure.
func (e *Executor) Run(ctx context.Context, actions []command.Action, deviceBase string) error {
	for i, action := range actions {
		step := i + 1
		if err := ctx.Err(); err != nil {
			return stepError(step, command.Name(action), err)
		}

		if err := e.runAction(ctx, action, deviceBase); err != nil {
			return stepError(step, command.Name(action), err)
		}
	}
	return nil
}

func (e *Executor) runAction(ctx context.Context, action command.Action, deviceBase string) error {
	switch act := action.(type) {
	case command.Launch:
		return e.client.Launch(ctx, deviceBase, act.ChannelID, act.Params)

	case command.Press:
		count := act.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			if err := e.client.Keypress(ctx, deviceBase, act.Key); err != nil {
				return err
			}
			if err := sleep(ctx, e.keyDelay()); err != nil {
				return err
			}
		}
		return nil

	case command.Type:
		for _, r := range act.Text {
			code, ok := literalKeyCode(r)
			if !ok {
				e.logger.WithField("char", string(r)).Warn("Skipping untypable character")
				continue
			}
			if err := e.client.Keypress(ctx, deviceBase, code); err != nil {
				return err
			}
			if err := sleep(ctx, e.typeDelay()); err != nil {
				return err
			}
		}
		return nil

	case command.Wait:
		return sleep(ctx, act.Duration)
	}

	return fmt.Errorf("unsupported action %q", command.Name(action))
}

func (e *Executor) keyDelay() time.Duration {
	if e.KeyDelay > 0 {
		return e.KeyDelay
	}
	return DefaultKeyDelay
}

func (e *Executor) typeDelay() time.Duration {
	if e.TypeDelay > 0 {
		return e.TypeDelay
	}
	return DefaultTypeDelay
}

// literalKeyCode maps a character to the device's literal keypress code.
// Characters outside the supported set are reported as untypable.
func literalKeyCode(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return "Lit_" + string(r-('a'-'A')), true
	case r >= 'A' && r <= 'Z':
		return "Lit_" + string(r), true
	case r >= '0' && r <= '9':
		return "Lit_" + string(r), true
	case r == ' ':
		return "Lit_%20", true
	}
	return "", false
}

// sleep waits without blocking other playback requests and returns early
// when the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func stepError(step int, action string, err error) *CommandError {
	cmdErr := &CommandError{Step: step, Action: action, Err: err}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		cmdErr.StatusCode = statusErr.Code
	}
	return cmdErr
}
