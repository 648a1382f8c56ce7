package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TheaterHook is one equipment power-on step: an HTTP call fired before
// playback starts on a device (switch an outlet, wake an amplifier, dim
// the lights).
type TheaterHook struct {
	Name    string `json:"name"`
	Method  string `json:"method"` // defaults to POST
	URL     string `json:"url"`
	Body    string `json:"body,omitempty"`
	DelayMS int    `json:"delayMs,omitempty"` // pause after the call, for slow equipment
}

// TheaterController runs the per-device setup hooks loaded from the
// theater file. Hooks are best-effort: a dead lightbulb must never block
// a movie.
type TheaterController struct {
	hooks      map[string][]TheaterHook // device id -> ordered hooks
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewTheaterController loads hook definitions from path. A missing file
// yields a controller with no hooks.
func NewTheaterController(path string, logger *logrus.Logger) (*TheaterController, error) {
	ctrl := &TheaterController{
		hooks: make(map[string][]TheaterHook),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ctrl, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read theater file: %w", err)
	}

	if err := json.Unmarshal(data, &ctrl.hooks); err != nil {
		return nil, fmt.Errorf("failed to parse theater file: %w", err)
	}

	count := 0
	for _, hooks := range ctrl.hooks {
		count += len(hooks)
	}
	logger.WithFields(logrus.Fields{
		"devices": len(ctrl.hooks),
		"hooks":   count,
	}).Info("Theater hooks loaded")

	return ctrl, nil
}

// Prepare runs the hooks registered for a device, in order. Failures are
// logged and skipped.
func (c *TheaterController) Prepare(ctx context.Context, deviceID string) {
	hooks := c.hooks[deviceID]
	if len(hooks) == 0 {
		return
	}

	c.logger.WithFields(logrus.Fields{
		"device": deviceID,
		"hooks":  len(hooks),
	}).Info("Running theater setup")

	for _, hook := range hooks {
		if err := c.runHook(ctx, hook); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"device": deviceID,
				"hook":   hook.Name,
			}).Warn("Theater hook failed, continuing")
		}

		if hook.DelayMS > 0 {
			select {
			case <-time.After(time.Duration(hook.DelayMS) * time.Millisecond):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (c *TheaterController) runHook(ctx context.Context, hook TheaterHook) error {
	method := strings.ToUpper(hook.Method)
	if method == "" {
		method = http.MethodPost
	}

	var body *strings.Reader
	if hook.Body != "" {
		body = strings.NewReader(hook.Body)
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, hook.URL, body)
	if err != nil {
		return fmt.Errorf("failed to create hook request: %w", err)
	}
	if hook.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("hook returned status %d", resp.StatusCode)
	}
	return nil
}
