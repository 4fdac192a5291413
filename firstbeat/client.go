package firstbeat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL         = "https://api.firstbeat.com"
	defaultPollInterval    = 5 * time.Second
	defaultMaxPollAttempts = 5
)

// Client is the core Sports Cloud API client.
//
// Credentials (consumer ID and shared secret) are fixed for the client's
// lifetime. The API key is fetched lazily on the first authenticated call
// and cached until the client is discarded.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	consumerID   string
	sharedSecret string

	mu     sync.Mutex
	apiKey string

	pollInterval    time.Duration
	maxPollAttempts int

	rateLimiter *rateLimiter
	logger      *slog.Logger

	// Services used for communicating with the Sports Cloud API endpoints.
	Account      *AccountService
	Athlete      *AthleteService
	Team         *TeamService
	Measurement  *MeasurementService
	Registration *RegistrationService
}

// NewClient creates a new Sports Cloud API client with the given credentials
// and options. The credentials come from consumer registration; pass empty
// strings if the client is used for registration only.
func NewClient(consumerID, sharedSecret string, opts ...Option) *Client {
	c := &Client{
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		baseURL:         defaultBaseURL,
		consumerID:      consumerID,
		sharedSecret:    sharedSecret,
		pollInterval:    defaultPollInterval,
		maxPollAttempts: defaultMaxPollAttempts,
		rateLimiter:     newRateLimiter(),
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Account = &AccountService{client: c}
	c.Athlete = &AthleteService{client: c}
	c.Team = &TeamService{client: c}
	c.Measurement = &MeasurementService{client: c}
	c.Registration = &RegistrationService{client: c}

	return c
}

// Do executes an HTTP request with context, a freshly signed bearer token,
// and the cached API key header. The key is bootstrapped on first use.
//
// Every endpoint except API-key retrieval and registration goes through
// here; those two bootstrap calls use send directly with reduced headers.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	key, err := c.ensureAPIKey(ctx)
	if err != nil {
		return nil, err
	}

	token, err := signToken(c.consumerID, c.sharedSecret, time.Now())
	if err != nil {
		return nil, fmt.Errorf("sign bearer token: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(apiKeyHeader, key)

	return c.send(ctx, req)
}

// send executes an HTTP request with context, rate limiting, and standard
// headers. Authentication headers are the caller's responsibility. Any
// status of 400 or above is logged and mapped to a typed error; callers
// never see a partial response for a failed request.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	// Ensure the request has the provided context attached.
	req = req.WithContext(ctx)

	// Set standard headers.
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("Content-Type") == "" && req.Method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	// Enforce local rate limit before executing request.
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("local rate limit wait interrupted: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// If context is canceled or deadline exceeded, return immediately.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request aborted by context: %w", ctx.Err())
		}
		return nil, fmt.Errorf("http execute request failed: %w", err)
	}

	// Handle standard HTTP errors (4xx, 5xx).
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		c.logger.Warn("request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("url", req.URL.String()),
			slog.String("body", string(body)))
		return nil, mapHTTPError(resp, body)
	}

	return resp, nil
}
