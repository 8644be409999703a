package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/ports"
)

// Client talks to the geocoding service over HTTP with its own timeout and
// circuit breaker, mirroring the tokenizer client.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) ports.LocationResolver {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "location",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Location circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		log:     log,
	}
}

func (c *Client) Resolve(ctx context.Context, language, text string) ([]ports.LocationCandidate, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		query := url.Values{}
		query.Set("q", text)
		query.Set("lang", language)

		endpoint := fmt.Sprintf("%s/api/lookup?%s", c.baseURL, query.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("location request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("location: unexpected status %d", resp.StatusCode)
		}

		var out struct {
			Data []ports.LocationCandidate `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("location: decode response: %w", err)
		}
		return out.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]ports.LocationCandidate), nil
}
