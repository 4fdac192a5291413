package firstbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Account represents a Sports customer account the consumer may access.
// One consumer can be connected to several customer accounts; access
// requires both Firstbeat approval and the account owner's authorization.
type Account struct {
	AccountID    string        `json:"accountId"`
	Name         string        `json:"name"`
	AuthorizedBy *AuthorizedBy `json:"authorizedBy,omitempty"`
}

// AuthorizedBy identifies the coach who granted the consumer access.
type AuthorizedBy struct {
	CoachID int64 `json:"coachId"`
}

// Coach represents a coach on a customer account. Coach information can be
// used, for example, to show which coach created a training session.
type Coach struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	CoachID   int64  `json:"coachId"`
}

// AccountService handles communication with the account related methods.
type AccountService struct {
	client *Client
}

// List fetches the accounts assigned to the API consumer. An empty list
// means the consumer has no access to any customer accounts yet.
func (s *AccountService) List(ctx context.Context) ([]Account, error) {
	req, err := http.NewRequest(http.MethodGet, s.client.baseURL+"/v1/sports/accounts/", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Accounts []Account `json:"accounts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Accounts == nil {
		body.Accounts = []Account{}
	}
	return body.Accounts, nil
}

// Coaches fetches all coaches on the account.
func (s *AccountService) Coaches(ctx context.Context, accountID string) ([]Coach, error) {
	u := fmt.Sprintf("%s/v1/sports/accounts/%s/coaches", s.client.baseURL, accountID)
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Coaches []Coach `json:"coaches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	if body.Coaches == nil {
		body.Coaches = []Coach{}
	}
	return body.Coaches, nil
}
