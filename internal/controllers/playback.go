package controllers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tapdeck/tapdeck/internal/channels"
	"github.com/tapdeck/tapdeck/internal/command"
	"github.com/tapdeck/tapdeck/internal/device"
	"github.com/tapdeck/tapdeck/internal/models"
)

// PlaybackController turns a media reference into remote-control traffic:
// look up the channel plugin, build the command, run the theater hooks,
// execute. Distinct requests are independent; the controller holds no
// per-request state.
type PlaybackController struct {
	registry *channels.Registry
	devices  *device.Registry
	executor *device.Executor
	theater  *TheaterController
	logger   *logrus.Logger
}

// NewPlaybackController creates a new playback controller
func NewPlaybackController(
	registry *channels.Registry,
	devices *device.Registry,
	executor *device.Executor,
	theater *TheaterController,
	logger *logrus.Logger,
) *PlaybackController {
	return &PlaybackController{
		registry: registry,
		devices:  devices,
		executor: executor,
		theater:  theater,
		logger:   logger,
	}
}

// Play executes the playback command for ref on the given device. An
// unknown channel or device fails immediately and is never retried.
func (c *PlaybackController) Play(ctx context.Context, ref models.MediaReference, deviceID string) error {
	channel, ok := c.registry.Get(ref.ChannelID)
	if !ok {
		return fmt.Errorf("no channel registered for id %q", ref.ChannelID)
	}

	resolvedID, deviceBase, err := c.devices.Resolve(deviceID)
	if err != nil {
		return err
	}

	if c.theater != nil {
		c.theater.Prepare(ctx, resolvedID)
	}

	cmd := channel.BuildCommand(ref)
	c.logger.WithFields(logrus.Fields{
		"channel":    channel.Name(),
		"content_id": ref.ContentID,
		"device":     resolvedID,
		"command":    command.Describe(cmd),
	}).Info("Starting playback")

	if err := c.executor.Execute(ctx, cmd, deviceBase); err != nil {
		return fmt.Errorf("playback on %s failed: %w", resolvedID, err)
	}
	return nil
}
