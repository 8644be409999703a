package tokenizer

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

// Client talks to the tokenizer service over HTTP. A stalled tokenizer
// stalls the slot being resolved, so the client carries its own request
// timeout and a circuit breaker.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) ports.Tokenizer {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "tokenizer",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Tokenizer circuit breaker state changed",
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

func (c *Client) Tokenize(ctx context.Context, language, text string) (*ports.TokenizeResult, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		query := url.Values{}
		query.Set("q", text)

		endpoint := fmt.Sprintf("%s/%s/tokenize?%s", c.baseURL, url.PathEscape(language), query.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("tokenizer request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("tokenizer: unexpected status %d", resp.StatusCode)
		}

		var out ports.TokenizeResult
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("tokenizer: decode response: %w", err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*ports.TokenizeResult), nil
}
