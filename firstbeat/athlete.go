package firstbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Athlete represents an athlete on a customer account. The email field is
// included only when the athlete has one set.
type Athlete struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	AthleteID int64  `json:"athleteId"`
}

// AthleteService handles communication with the athlete related methods.
type AthleteService struct {
	client *Client
}

// List fetches all athletes on the account, following the offset pagination
// until the server reports no more pages. Note that an account can have
// athletes that are not assigned to any team.
func (s *AthleteService) List(ctx context.Context, accountID string) ([]Athlete, error) {
	return collectPages(ctx, func(ctx context.Context, offset int) (bool, []Athlete, error) {
		u, err := url.Parse(fmt.Sprintf("%s/v1/sports/accounts/%s/athletes", s.client.baseURL, accountID))
		if err != nil {
			return false, nil, err
		}
		setOffset(u, offset)

		req, err := http.NewRequest(http.MethodGet, u.String(), nil)
		if err != nil {
			return false, nil, err
		}

		resp, err := s.client.Do(ctx, req)
		if err != nil {
			return false, nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		var page struct {
			More     bool      `json:"more"`
			Athletes []Athlete `json:"athletes"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			return false, nil, err
		}

		return page.More, page.Athletes, nil
	})
}
