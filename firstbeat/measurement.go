package firstbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultResultVariables is the variable subset requested from the results
// endpoint when the caller does not name one. Request only the variables you
// need; some time-series variables are computationally heavy and must be
// asked for explicitly.
var DefaultResultVariables = []string{"trimp", "trimpPerMinute", "heartRateAverage"}

// Measurement represents one recorded measurement for an athlete. It lists
// the measurement itself, not the analysis results (HR, TRIMP, EPOC, ...);
// fetch those with Results. All times are UTC. ExerciseType is present only
// when a value has been set for the measurement.
type Measurement struct {
	MeasurementID int64     `json:"measurementId"`
	SessionID     int64     `json:"sessionId,omitempty"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	ExerciseType  *string   `json:"exerciseType,omitempty"`
}

// MeasurementResults holds the analysis variables computed for one
// measurement.
type MeasurementResults struct {
	MeasurementID int64      `json:"measurementId"`
	SessionID     int64      `json:"sessionId,omitempty"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       time.Time  `json:"endTime"`
	Variables     []Variable `json:"variables"`
	ExerciseType  *string    `json:"exerciseType,omitempty"`
	AthleteID     int64      `json:"athleteId"`
}

// Variable is one named analysis result. The value is either a scalar or a
// time-series array depending on the variable; use Scalar or Series to
// extract it.
type Variable struct {
	Name  string          `json:"name"`
	Unit  string          `json:"unit,omitempty"`
	Value json.RawMessage `json:"value"`
}

// Scalar returns the value as a single number. The second return is false
// when the value is a time series or absent.
func (v Variable) Scalar() (float64, bool) {
	var f float64
	if err := json.Unmarshal(v.Value, &f); err != nil {
		return 0, false
	}
	return f, true
}

// Series returns the value as a time-series array. The second return is
// false when the value is a scalar or absent.
func (v Variable) Series() ([]float64, bool) {
	var s []float64
	if err := json.Unmarshal(v.Value, &s); err != nil || s == nil {
		return nil, false
	}
	return s, true
}

// MeasurementService handles communication with the measurement related methods.
type MeasurementService struct {
	client *Client
}

// List fetches all measurements for one athlete, following the offset
// pagination until the server reports no more pages.
func (s *MeasurementService) List(ctx context.Context, accountID string, athleteID int64) ([]Measurement, error) {
	return collectPages(ctx, func(ctx context.Context, offset int) (bool, []Measurement, error) {
		u, err := url.Parse(fmt.Sprintf("%s/v1/sports/accounts/%s/athletes/%d/measurements", s.client.baseURL, accountID, athleteID))
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
			More         bool          `json:"more"`
			Measurements []Measurement `json:"measurements"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			return false, nil, err
		}

		return page.More, page.Measurements, nil
	})
}

// Results fetches the analysis results for one measurement, restricted to
// the named variables (DefaultResultVariables when none are given).
//
// Old data may not be pre-analysed; the first query can trigger the analysis
// and the server answers 202 Accepted until it finishes. The client then
// waits 5 seconds and reissues the identical request, up to 5 attempts in
// total. Exhausting the attempts returns a *ProcessingError; any status
// other than 200 or 202 fails immediately without retrying.
func (s *MeasurementService) Results(ctx context.Context, accountID string, athleteID, measurementID int64, variables []string) (*MeasurementResults, error) {
	if len(variables) == 0 {
		variables = DefaultResultVariables
	}

	u, err := url.Parse(fmt.Sprintf("%s/v1/sports/accounts/%s/athletes/%d/measurements/%d/results",
		s.client.baseURL, accountID, athleteID, measurementID))
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("var", strings.Join(variables, ","))
	u.RawQuery = q.Encode()

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequest(http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}

		resp, err := s.client.Do(ctx, req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusAccepted {
			// Drain body to reuse connection
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()

			if attempt >= s.client.maxPollAttempts {
				return nil, &ProcessingError{
					Attempts:   attempt,
					StatusCode: http.StatusAccepted,
				}
			}

			select {
			case <-time.After(s.client.pollInterval):
				// Reissue the identical request.
			case <-ctx.Done():
				return nil, fmt.Errorf("context canceled while waiting for analysis: %w", ctx.Err())
			}
			continue
		}

		var results MeasurementResults
		err = json.NewDecoder(resp.Body).Decode(&results)
		_ = resp.Body.Close()
		if err != nil {
			return nil, err
		}

		return &results, nil
	}
}
