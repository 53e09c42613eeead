// Package rates talks to the external exchange-rate provider. The provider
// is an opaque rate source: this package fetches, it never computes.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// ErrUnavailable indicates the provider could not serve rates.
var ErrUnavailable = errors.New("exchange rate source unavailable")

// Source yields the latest exchange rates for a base currency against the
// given target symbols. Symbols the provider does not know are simply absent
// from the result.
type Source interface {
	Latest(ctx context.Context, base string, symbols []string) (map[string]float64, error)
}

// Client is the HTTP implementation of Source.
type Client struct {
	baseURL   string
	accessKey string
	http      *http.Client
	log       *slog.Logger
}

// NewClient builds a provider client. timeout bounds each attempt.
func NewClient(baseURL, accessKey string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		accessKey: accessKey,
		http:      &http.Client{Timeout: timeout},
		log:       log,
	}
}

// Latest fetches rates from the provider, retrying transient failures with
// exponential backoff. Provider 4xx responses fail immediately.
func (c *Client) Latest(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	q := u.Query()
	if c.accessKey != "" {
		q.Set("access_key", c.accessKey)
	}
	q.Set("base", base)
	q.Set("symbols", strings.Join(symbols, ","))
	u.RawQuery = q.Encode()

	var out map[string]float64
	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("provider returned %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("provider returned %d", resp.StatusCode)
		}

		var payload struct {
			Rates map[string]float64 `json:"rates"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decode provider response: %w", err)
		}
		out = payload.Rates
		return nil
	})
	if err != nil {
		c.log.Warn("rate fetch failed", "base", base, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if out == nil {
		out = map[string]float64{}
	}
	return out, nil
}
