package firstbeat

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client used for requests.
// If this is not provided, a default http.Client is used.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL overrides the default Sports Cloud API base URL.
// This is primarily useful for testing or connecting to a proxy.
func WithBaseURL(url string) Option {
	return func(client *Client) {
		client.baseURL = url
	}
}

// WithLogger sets the structured logger used for request diagnostics.
// If this is not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithRateLimiting enables or disables client-side rate limiting.
// This is primarily used for testing.
func WithRateLimiting(enabled bool) Option {
	return func(client *Client) {
		client.rateLimiter.SetAutoLimiting(enabled)
	}
}

// WithPollInterval sets the wait between poll attempts when the server
// answers 202 Accepted for analysis results. The API contract is a fixed
// 5-second wait; override this only in tests.
func WithPollInterval(interval time.Duration) Option {
	return func(client *Client) {
		client.pollInterval = interval
	}
}

// WithMaxPollAttempts sets the total number of requests issued before the
// client gives up on a still-processing analysis. The API contract is 5.
func WithMaxPollAttempts(attempts int) Option {
	return func(client *Client) {
		client.maxPollAttempts = attempts
	}
}
