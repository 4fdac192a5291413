package firstbeat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const resultsPath = "/v1/sports/accounts/3-99999/athletes/381678/measurements/4535109/results"

const resultsBody = `{
	"measurementId": 4535109,
	"sessionId": 74180,
	"startTime": "2018-03-01T08:20:51Z",
	"endTime": "2018-03-01T08:23:50Z",
	"variables": [
		{"name": "trimp", "value": 5.4673919677734375},
		{"name": "trimpPerMinute", "unit": "min⁻¹", "value": 1.773193359375},
		{"name": "heartRateAverage", "unit": "min⁻¹", "value": 149.56558227539062}
	],
	"exerciseType": "Evening Practice",
	"athleteId": 381678
}`

// resultsServer answers 202 Accepted for the first `processing` requests to
// the results endpoint, then 200 with a fixed payload.
func resultsServer(t *testing.T, processing int, requests *int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apikey": "k"}`))
	})
	mux.HandleFunc(resultsPath, func(w http.ResponseWriter, r *http.Request) {
		*requests++
		if *requests <= processing {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resultsBody))
	})

	return httptest.NewServer(mux)
}

func TestMeasurementResults_PollsUntilReady(t *testing.T) {
	var requests int
	ts := resultsServer(t, 4, &requests)
	defer ts.Close()

	client := newTestClient(t, ts)

	results, err := client.Measurement.Results(context.Background(), "3-99999", 381678, 4535109, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requests != 5 {
		t.Errorf("expected 5 requests (4 processing + 1 success), got %d", requests)
	}
	if results.MeasurementID != 4535109 {
		t.Errorf("expected measurement id 4535109, got %d", results.MeasurementID)
	}
	if results.AthleteID != 381678 {
		t.Errorf("expected athlete id 381678, got %d", results.AthleteID)
	}
	if results.ExerciseType == nil || *results.ExerciseType != "Evening Practice" {
		t.Errorf("expected exerciseType 'Evening Practice', got %v", results.ExerciseType)
	}
	if len(results.Variables) != 3 {
		t.Fatalf("expected 3 variables, got %d", len(results.Variables))
	}
	if results.Variables[0].Name != "trimp" {
		t.Errorf("expected first variable trimp, got %s", results.Variables[0].Name)
	}
	if v, ok := results.Variables[2].Scalar(); !ok || v < 149 || v > 150 {
		t.Errorf("expected heartRateAverage around 149.6, got %v (ok=%v)", v, ok)
	}
}

func TestMeasurementResults_Exhaustion(t *testing.T) {
	var requests int
	ts := resultsServer(t, 100, &requests)
	defer ts.Close()

	client := newTestClient(t, ts)

	_, err := client.Measurement.Results(context.Background(), "3-99999", 381678, 4535109, nil)

	var procErr *ProcessingError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessingError, got %v", err)
	}
	if procErr.StatusCode != http.StatusAccepted {
		t.Errorf("expected status code 202, got %d", procErr.StatusCode)
	}
	if procErr.Attempts != 5 {
		t.Errorf("expected 5 attempts, got %d", procErr.Attempts)
	}
	if requests != 5 {
		t.Errorf("expected no further requests after the 5th, got %d", requests)
	}
}

func TestMeasurementResults_OtherStatusFailsImmediately(t *testing.T) {
	var requests int

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apikey": "k"}`))
	})
	mux.HandleFunc(resultsPath, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "measurement not found"}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts)

	_, err := client.Measurement.Results(context.Background(), "3-99999", 381678, 4535109, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if requests != 1 {
		t.Errorf("expected exactly 1 request (no retry on non-202 errors), got %d", requests)
	}
}

func TestMeasurementResults_VariableSelection(t *testing.T) {
	var gotVar string

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apikey": "k"}`))
	})
	mux.HandleFunc(resultsPath, func(w http.ResponseWriter, r *http.Request) {
		gotVar = r.URL.Query().Get("var")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resultsBody))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts)
	ctx := context.Background()

	// Default subset when no variables are named.
	if _, err := client.Measurement.Results(ctx, "3-99999", 381678, 4535109, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotVar != "trimp,trimpPerMinute,heartRateAverage" {
		t.Errorf("expected default var selection, got %q", gotVar)
	}

	// Explicit subset is passed comma-joined.
	if _, err := client.Measurement.Results(ctx, "3-99999", 381678, 4535109, []string{"epoc", "heartRate"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotVar != "epoc,heartRate" {
		t.Errorf("expected var=epoc,heartRate, got %q", gotVar)
	}
}

func TestMeasurementResults_ContextCanceledDuringWait(t *testing.T) {
	var requests int

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apikey": "k"}`))
	})
	mux.HandleFunc(resultsPath, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusAccepted)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts, WithPollInterval(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// Cancel while the client is sitting in the poll wait.
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := client.Measurement.Results(ctx, "3-99999", 381678, 4535109, nil)
	if err == nil {
		t.Fatal("expected an error when the context is canceled mid-poll")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in the chain, got %v", err)
	}
	if requests != 1 {
		t.Errorf("expected exactly 1 request before cancellation, got %d", requests)
	}
}

func TestMeasurementList_OptionalExerciseType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apikey": "k"}`))
	})
	mux.HandleFunc("/v1/sports/accounts/3-99999/athletes/381678/measurements", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"more": false,
			"measurements": [
				{
					"measurementId": 4535109,
					"sessionId": 74180,
					"startTime": "2018-03-01T08:20:51Z",
					"endTime": "2018-03-01T08:23:50Z",
					"exerciseType": "Evening Practice"
				},
				{
					"measurementId": 4535110,
					"sessionId": 74181,
					"startTime": "2018-03-02T08:20:51Z",
					"endTime": "2018-03-02T08:23:50Z"
				}
			]
		}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts)

	measurements, err := client.Measurement.List(context.Background(), "3-99999", 381678)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(measurements) != 2 {
		t.Fatalf("expected 2 measurements, got %d", len(measurements))
	}
	if measurements[0].ExerciseType == nil || *measurements[0].ExerciseType != "Evening Practice" {
		t.Errorf("expected exerciseType on the first measurement, got %v", measurements[0].ExerciseType)
	}
	if measurements[1].ExerciseType != nil {
		t.Errorf("expected absent exerciseType on the second measurement, got %q", *measurements[1].ExerciseType)
	}
}

func TestVariable_ScalarAndSeries(t *testing.T) {
	scalar := Variable{Name: "trimp", Value: []byte(`5.46`)}
	series := Variable{Name: "heartRate", Value: []byte(`[120, 125.5, 130]`)}

	if v, ok := scalar.Scalar(); !ok || v != 5.46 {
		t.Errorf("expected scalar 5.46, got %v (ok=%v)", v, ok)
	}
	if _, ok := scalar.Series(); ok {
		t.Error("expected scalar value to not decode as a series")
	}

	s, ok := series.Series()
	if !ok || len(s) != 3 || s[1] != 125.5 {
		t.Errorf("expected series [120 125.5 130], got %v (ok=%v)", s, ok)
	}
	if _, ok := series.Scalar(); ok {
		t.Error("expected series value to not decode as a scalar")
	}
}
