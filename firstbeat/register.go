package firstbeat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Credentials are the API credentials issued by consumer registration.
// The shared secret is shown once at registration time and cannot be
// retrieved again; store both values securely.
type Credentials struct {
	ConsumerName string `json:"consumerName"`
	ConsumerID   string `json:"id"`
	SharedSecret string `json:"sharedSecret"`
}

// RegistrationService handles consumer registration. Registration is the
// only endpoint that requires no authentication at all, and the only flow
// where failures surface as a *RegistrationError instead of the uniform
// fetch error types.
type RegistrationService struct {
	client *Client
}

// Register creates a new API consumer with the given name. The name
// identifies the integration to Firstbeat support and cannot be changed
// later.
func (s *RegistrationService) Register(ctx context.Context, consumerName string) (*Credentials, error) {
	payload, err := json.Marshal(map[string]string{"consumerName": consumerName})
	if err != nil {
		return nil, &RegistrationError{Err: err}
	}

	req, err := http.NewRequest(http.MethodPost, s.client.baseURL+"/v1/account/register", bytes.NewReader(payload))
	if err != nil {
		return nil, &RegistrationError{Err: err}
	}

	resp, err := s.client.send(ctx, req)
	if err != nil {
		return nil, &RegistrationError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var creds Credentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return nil, &RegistrationError{Err: fmt.Errorf("server returned an invalid JSON payload: %w", err)}
	}

	return &creds, nil
}
