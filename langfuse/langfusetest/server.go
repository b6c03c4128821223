package langfusetest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/Alicelibinguo5/doj-legal-reseach-agent/langfuse"
)

// Event is a decoded ingestion event as received by the mock server.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Timestamp string         `json:"timestamp"`
	Body      map[string]any `json:"body"`
}

// batchPayload mirrors the ingestion request wire format.
type batchPayload struct {
	Batch []Event `json:"batch"`
}

// RecordedRequest is a recorded HTTP request.
type RecordedRequest struct {
	Method      string
	Path        string
	Body        []byte
	ContentType string
}

// MockServer is a test HTTP server that records ingestion requests for
// verification.
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*RecordedRequest
	events   []Event

	// ResponseFunc customizes responses. If nil, the server returns an
	// ingestion success for every event in the batch.
	ResponseFunc func(r *http.Request) (int, any)
}

// NewMockServer creates a new mock Langfuse server.
func NewMockServer() *MockServer {
	ms := &MockServer{}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		ms.mu.Lock()
		ms.requests = append(ms.requests, &RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Body:        body,
			ContentType: r.Header.Get("Content-Type"),
		})
		if strings.HasSuffix(r.URL.Path, "/ingestion") {
			var payload batchPayload
			if err := json.Unmarshal(body, &payload); err == nil {
				ms.events = append(ms.events, payload.Batch...)
			}
		}
		ms.mu.Unlock()

		status := http.StatusOK
		var response any
		if ms.ResponseFunc != nil {
			status, response = ms.ResponseFunc(r)
		} else {
			var payload batchPayload
			json.Unmarshal(body, &payload)
			result := langfuse.IngestionResult{}
			for _, e := range payload.Batch {
				result.Successes = append(result.Successes, langfuse.IngestionSuccess{ID: e.ID, Status: 200})
			}
			response = result
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))

	return ms
}

// NewClient creates a langfuse client pointed at the mock server.
func (ms *MockServer) NewClient(opts ...langfuse.ConfigOption) (*langfuse.Client, error) {
	allOpts := append([]langfuse.ConfigOption{langfuse.WithBaseURL(ms.URL)}, opts...)
	return langfuse.New("pk-lf-test-0000", "sk-lf-test-0000", allOpts...)
}

// Requests returns all recorded requests.
func (ms *MockServer) Requests() []*RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]*RecordedRequest{}, ms.requests...)
}

// RequestCount returns the number of recorded requests.
func (ms *MockServer) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

// Events returns all ingestion events received so far, in order.
func (ms *MockServer) Events() []Event {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]Event{}, ms.events...)
}

// EventsOfType returns received ingestion events with the given type,
// e.g. "score-create".
func (ms *MockServer) EventsOfType(eventType string) []Event {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	var out []Event
	for _, e := range ms.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears all recorded requests and events.
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requests = nil
	ms.events = nil
}

// RespondWithError configures the server to fail every request with the
// given status.
func (ms *MockServer) RespondWithError(statusCode int, message string) {
	ms.ResponseFunc = func(r *http.Request) (int, any) {
		return statusCode, map[string]string{
			"error":   message,
			"message": message,
		}
	}
}

// ScoreValue extracts the numeric value of a score-create event body.
// Returns 0 and false when the body has no numeric value.
func ScoreValue(e Event) (float64, bool) {
	v, ok := e.Body["value"]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// ScoreName extracts the name of a score-create event body.
func ScoreName(e Event) string {
	s, _ := e.Body["name"].(string)
	return s
}
