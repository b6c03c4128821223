package langfuse

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPClientRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(HealthStatus{Status: "OK"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithRetryDelay(time.Millisecond))
	defer client.Shutdown(context.Background())

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed after retries: %v", err)
	}
	if status.Status != "OK" {
		t.Errorf("Status = %v, want OK", status.Status)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestHTTPClientDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithRetryDelay(time.Millisecond))
	defer client.Shutdown(context.Background())

	_, err := client.Health(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Health error = %v, want 401 APIError", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1 (no retries on 401)", got)
	}
}

func TestHTTPClientExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL,
		WithMaxRetries(2),
		WithRetryDelay(time.Millisecond),
	)
	defer client.Shutdown(context.Background())

	_, err := client.Health(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Health error = %v, want 429 APIError", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3 (initial + 2 retries)", got)
	}
}

func TestHTTPClientSendsBasicAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(HealthStatus{Status: "OK"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	defer client.Shutdown(context.Background())

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}

	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("pk-lf-test-key:sk-lf-test-key"))
	if gotAuth != want {
		t.Errorf("Authorization = %q, want %q", gotAuth, want)
	}
}

func TestHTTPClientUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(HealthStatus{Status: "OK"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	defer client.Shutdown(context.Background())

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health failed: %v", err)
	}

	if !strings.HasPrefix(gotUA, "doj-research-agent/") {
		t.Errorf("User-Agent = %q, want doj-research-agent prefix", gotUA)
	}
}
