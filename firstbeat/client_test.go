package firstbeat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// newTestClient creates a client pointed at the test server with rate
// limiting disabled and a near-instant poll interval so tests run fast.
func newTestClient(t *testing.T, ts *httptest.Server, opts ...Option) *Client {
	t.Helper()

	base := []Option{
		WithBaseURL(ts.URL),
		WithRateLimiting(false),
		WithPollInterval(0),
	}
	return NewClient("test-consumer-id", "test-shared-secret", append(base, opts...)...)
}

// apiKeyHandler serves the bootstrap endpoint and counts retrievals.
func apiKeyHandler(t *testing.T, counter *atomic.Int32) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)

		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("expected bearer token on api-key retrieval, got %q", auth)
		}
		if r.Header.Get("x-api-key") != "" {
			t.Error("api-key retrieval must not carry the x-api-key header")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"apikey": "test-api-key"}`))
	}
}

func TestServiceInitialization(t *testing.T) {
	client := NewClient("id", "secret")

	if client.Account == nil {
		t.Error("expected client.Account to be initialized")
	}
	if client.Athlete == nil {
		t.Error("expected client.Athlete to be initialized")
	}
	if client.Team == nil {
		t.Error("expected client.Team to be initialized")
	}
	if client.Measurement == nil {
		t.Error("expected client.Measurement to be initialized")
	}
	if client.Registration == nil {
		t.Error("expected client.Registration to be initialized")
	}
}

func TestDo_AuthHeaders(t *testing.T) {
	var keyCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", apiKeyHandler(t, &keyCalls))
	mux.HandleFunc("/v1/sports/accounts/", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			t.Errorf("expected bearer token, got %q", auth)
		}
		if got := r.Header.Get("x-api-key"); got != "test-api-key" {
			t.Errorf("expected cached api key header, got %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected a correlation id header")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accounts": []}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts)
	if _, err := client.Account.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_APIKeyFetchedOnce(t *testing.T) {
	var keyCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", apiKeyHandler(t, &keyCalls))
	mux.HandleFunc("/v1/sports/accounts/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accounts": []}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts)

	// Two consecutive authenticated calls against a fresh client.
	for i := 0; i < 2; i++ {
		if _, err := client.Account.List(context.Background()); err != nil {
			t.Fatalf("unexpected error on call %d: %v", i+1, err)
		}
	}

	if got := keyCalls.Load(); got != 1 {
		t.Errorf("expected exactly 1 api-key retrieval, got %d", got)
	}
}

func TestDo_APIKeyBootstrapFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "consumer not approved"}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts)

	_, err := client.Account.List(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError from failed bootstrap, got %v", err)
	}
	if authErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", authErr.StatusCode)
	}
}

func TestDo_EmptySecretSurfacesSigningError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	client := NewClient("consumer", "", WithBaseURL(ts.URL), WithRateLimiting(false))

	if _, err := client.Account.List(context.Background()); err == nil {
		t.Error("expected a signing error when the shared secret is empty")
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Account.List(ctx); err == nil {
		t.Error("expected an error for a canceled context")
	}
}

func TestMapHTTPError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/account/api-key", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apikey": "k"}`))
	})
	mux.HandleFunc("/v1/sports/accounts/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("fail") {
		case "429":
			w.WriteHeader(http.StatusTooManyRequests)
		case "500":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "boom"}`))
		default:
			_, _ = w.Write([]byte(`{"accounts": []}`))
		}
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := newTestClient(t, ts)
	ctx := context.Background()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/sports/accounts/?fail=429", nil)
	_, err := client.Do(ctx, req)
	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Errorf("expected *RateLimitError for 429, got %v", err)
	}

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/v1/sports/accounts/?fail=500", nil)
	_, err = client.Do(ctx, req)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError for 500, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", apiErr.StatusCode)
	}
	if apiErr.Message == "" {
		t.Error("expected the response body to be carried on the error")
	}
}
