// Package search provides the HTTP image-search adapter.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aretw0/picbot/pkg/domain"
)

// Client calls an image-search endpoint and maps its hits to
// domain.SearchResult. An empty hit list is a valid, non-error result.
type Client struct {
	endpoint string
	key      string
	httpc    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client (and with it, timeout policy).
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a search client for the given endpoint and key.
func New(endpoint, key string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		key:      key,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type wireHit struct {
	Name         string `json:"name"`
	ContentURL   string `json:"contentUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	HostPage     string `json:"hostPageUrl"`
}

type wireResponse struct {
	Value []wireHit `json:"value"`
}

// Search queries the endpoint and returns the ranked hits in order.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("search: invalid endpoint: %w", err)
	}
	q := reqURL.Query()
	q.Set("q", query)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	if c.key != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(wire.Value))
	for _, hit := range wire.Value {
		result := domain.SearchResult{
			Title:    hit.Name,
			ImageURL: hit.ContentURL,
		}
		if hit.ThumbnailURL != "" || hit.HostPage != "" {
			result.Metadata = map[string]string{}
			if hit.ThumbnailURL != "" {
				result.Metadata["thumbnail_url"] = hit.ThumbnailURL
			}
			if hit.HostPage != "" {
				result.Metadata["host_page_url"] = hit.HostPage
			}
		}
		results = append(results, result)
	}

	return results, nil
}
