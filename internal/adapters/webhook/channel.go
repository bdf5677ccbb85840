// Package webhook provides the outbound OutputChannel that POSTs replies to
// a configured webhook URL.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/picbot/pkg/domain"
)

// Channel implements ports.OutputChannel over HTTP. Delivery is
// fire-and-forget from the engine's perspective; the only thing reported
// back is success or failure of the POST itself.
type Channel struct {
	url   string
	httpc *http.Client
}

// Option configures the Channel.
type Option func(*Channel)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Channel) {
		c.httpc = httpc
	}
}

// New creates a channel delivering to the given webhook URL.
func New(url string, opts ...Option) *Channel {
	c := &Channel{
		url:   url,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send POSTs the reply as JSON.
func (c *Channel) Send(ctx context.Context, reply domain.Reply) error {
	body, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("webhook: marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}

	return nil
}
