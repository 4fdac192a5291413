package firstbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Team represents a team on a customer account, including its sub-groups.
type Team struct {
	Name       string  `json:"name"`
	TeamID     int64   `json:"teamId"`
	AthleteIDs []int64 `json:"athleteIds"`
	Groups     []Group `json:"groups"`
}

// Group is a sub-group within a team (for example a position group).
type Group struct {
	GroupID    int64   `json:"groupId"`
	Name       string  `json:"name"`
	AthleteIDs []int64 `json:"athleteIds"`
}

// TeamService handles communication with the team related methods.
type TeamService struct {
	client *Client
}

// List fetches all teams and their groups on the account, following the
// offset pagination until the server reports no more pages.
func (s *TeamService) List(ctx context.Context, accountID string) ([]Team, error) {
	return collectPages(ctx, func(ctx context.Context, offset int) (bool, []Team, error) {
		u, err := url.Parse(fmt.Sprintf("%s/v1/sports/accounts/%s/teams", s.client.baseURL, accountID))
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
			More  bool   `json:"more"`
			Teams []Team `json:"teams"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			return false, nil, err
		}

		return page.More, page.Teams, nil
	})
}
