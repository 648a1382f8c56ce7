// Package device speaks the streaming device's HTTP remote-control
// protocol: POST /launch/{channelId}, POST /keypress/{Key} and the
// device-info probe. The executor built on top runs whole playback
// commands; the client knows nothing about channels.
package device

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// StatusError is a non-2xx response from the device.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("device returned status %d", e.Code)
}

// Info is the subset of the device-info probe the server cares about.
type Info struct {
	XMLName      xml.Name `xml:"device-info"`
	ModelName    string   `xml:"model-name"`
	FriendlyName string   `xml:"user-device-name"`
	SerialNumber string   `xml:"serial-number"`
	PowerMode    string   `xml:"power-mode"`
}

// Client wraps the device's HTTP remote-control endpoint. One client is
// shared by all requests; connection pooling is its http.Client's
// concern.
type Client struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new device protocol client
func NewClient(logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Launch starts or deep-links into a channel.
func (c *Client) Launch(ctx context.Context, deviceBase, channelID, params string) error {
	u := deviceBase + "/launch/" + channelID
	if params != "" {
		u += "?" + params
	}
	return c.post(ctx, u)
}

// Keypress sends one named remote key or literal character code.
func (c *Client) Keypress(ctx context.Context, deviceBase, key string) error {
	return c.post(ctx, deviceBase+"/keypress/"+key)
}

// DeviceInfo probes the device identity endpoint.
func (c *Client) DeviceInfo(ctx context.Context, deviceBase string) (*Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, deviceBase+"/query/device-info", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("device unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var info Info
	if err := xml.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to parse device info: %w", err)
	}
	return &info, nil
}

func (c *Client) post(ctx context.Context, url string) error {
	c.logger.WithField("url", url).Debug("Device request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Length", "0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("device unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
