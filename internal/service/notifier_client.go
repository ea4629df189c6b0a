package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Digest is the payload the external notifier consumes: the overdue
// checks and the roster of subscribed recipients. How it is delivered
// (email or otherwise) is entirely the notifier's business.
type Digest struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Items       []DigestItem `json:"items"`
	Recipients  []string     `json:"recipients"`
}

// DigestItem joins a delayed check with display fields of its device.
type DigestItem struct {
	Check          *DelayedCheck `json:"check"`
	DeviceName     string        `json:"deviceName,omitempty"`
	DeviceLocation string        `json:"deviceLocation,omitempty"`
}

// Notifier pushes the overdue digest to the external notification
// dispatcher.
type Notifier interface {
	Enabled() bool
	Push(ctx context.Context, digest Digest) error
}

// HTTPNotifier posts the digest as JSON to the dispatcher's endpoint.
type HTTPNotifier struct {
	client  *resty.Client
	url     string
	enabled bool
	logger  *zap.Logger
}

func NewHTTPNotifier(url string, enabled bool, timeout time.Duration, logger *zap.Logger) *HTTPNotifier {
	client := resty.New().SetTimeout(timeout)
	return &HTTPNotifier{client: client, url: url, enabled: enabled && url != "", logger: logger}
}

func (n *HTTPNotifier) Enabled() bool { return n.enabled }

func (n *HTTPNotifier) Push(ctx context.Context, digest Digest) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(digest).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to push digest: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("notifier rejected digest: status %d", resp.StatusCode())
	}
	n.logger.Debug("digest pushed",
		zap.Int("items", len(digest.Items)),
		zap.Int("status", resp.StatusCode()),
	)
	return nil
}
