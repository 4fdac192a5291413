package firstbeat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// apiKeyHeader carries the cached API key on every non-bootstrap request.
const apiKeyHeader = "x-api-key"

// ensureAPIKey returns the cached API key, retrieving it from the server on
// the first call. The key is created once per consumer and the server
// returns the same key on every retrieval, so caching it for the client's
// lifetime is safe.
func (c *Client) ensureAPIKey(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.apiKey != "" {
		return c.apiKey, nil
	}

	key, err := c.retrieveAPIKey(ctx)
	if err != nil {
		return "", err
	}

	c.apiKey = key
	return key, nil
}

// retrieveAPIKey calls the bootstrap endpoint. This is one of the two calls
// that do not carry the x-api-key header; it authenticates with the bearer
// token alone.
func (c *Client) retrieveAPIKey(ctx context.Context) (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/account/api-key", nil)
	if err != nil {
		return "", err
	}

	token, err := signToken(c.consumerID, c.sharedSecret, time.Now())
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		APIKey string `json:"apikey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.APIKey == "" {
		return "", errors.New("api key response missing apikey field")
	}

	return body.APIKey, nil
}
