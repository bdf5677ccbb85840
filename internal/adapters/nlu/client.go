// Package nlu provides the HTTP intent-classifier adapter.
//
// The provider's string intent names are mapped to the closed domain.Intent
// set here, at the adapter boundary; nothing downstream switches on raw
// names.
package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/picbot/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Client calls a LUIS-style recognition endpoint.
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

// New creates a classifier client for the given endpoint and key.
// Credentials are passed in explicitly; the client is stateless per call.
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

// wireIntent is the provider's top intent shape.
type wireIntent struct {
	Intent string  `mapstructure:"intent"`
	Score  float64 `mapstructure:"score"`
}

// wireEntity is the provider's extracted entity shape.
type wireEntity struct {
	Entity string `mapstructure:"entity"`
	Type   string `mapstructure:"type"`
	Role   string `mapstructure:"role"`
}

// Classify sends the utterance to the recognition endpoint and maps the
// response to the closed intent set.
func (c *Client) Classify(ctx context.Context, utterance string) (*domain.Recognition, error) {
	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("nlu: invalid endpoint: %w", err)
	}
	q := reqURL.Query()
	q.Set("q", utterance)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("nlu: build request: %w", err)
	}
	if c.key != "" {
		req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nlu: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nlu: unexpected status %d", resp.StatusCode)
	}

	// The payload shape differs between provider API versions (v3 nests the
	// verdict under "prediction"), so decode generically first and map the
	// relevant parts with mapstructure.
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("nlu: decode response: %w", err)
	}
	if prediction, ok := raw["prediction"].(map[string]any); ok {
		raw = prediction
	}

	rec := &domain.Recognition{
		Intent:   domain.IntentNone,
		Entities: make(map[string][]string),
	}

	if top, ok := raw["topScoringIntent"]; ok {
		var wi wireIntent
		if err := mapstructure.Decode(top, &wi); err != nil {
			return nil, fmt.Errorf("nlu: decode top intent: %w", err)
		}
		rec.TopIntent = wi.Intent
		rec.Intent = intentFromName(wi.Intent)
		rec.Score = clampScore(wi.Score)
	}

	if ents, ok := raw["entities"]; ok {
		var wes []wireEntity
		if err := mapstructure.Decode(ents, &wes); err != nil {
			return nil, fmt.Errorf("nlu: decode entities: %w", err)
		}
		for _, we := range wes {
			role := we.Role
			if role == "" {
				role = we.Type
			}
			value := strings.TrimSpace(we.Entity)
			if role == "" || value == "" {
				continue
			}
			rec.Entities[role] = append(rec.Entities[role], value)
		}
	}

	return rec, nil
}

// intentFromName maps the provider's raw intent names to the closed set.
func intentFromName(name string) domain.Intent {
	switch name {
	case "", "None":
		return domain.IntentNone
	case "Greeting":
		return domain.IntentGreeting
	case "OrderPic":
		return domain.IntentOrderPic
	case "SharePic":
		return domain.IntentSharePic
	case "SearchPics":
		return domain.IntentSearchPics
	default:
		return domain.IntentUnknown
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
