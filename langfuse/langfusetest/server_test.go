package langfusetest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Alicelibinguo5/doj-legal-reseach-agent/langfuse"
)

func TestMockServerRecordsEvents(t *testing.T) {
	ms := NewMockServer()
	defer ms.Close()

	client, err := ms.NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Shutdown(context.Background())

	ctx := context.Background()
	trace, err := client.NewTrace().Name("recorded").Create(ctx)
	if err != nil {
		t.Fatalf("trace create failed: %v", err)
	}
	if err := trace.ScoreNumeric(ctx, "accuracy", 0.75); err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if err := client.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if got := ms.RequestCount(); got != 1 {
		t.Errorf("RequestCount = %d, want 1", got)
	}
	if got := len(ms.Events()); got != 2 {
		t.Fatalf("Events = %d, want 2", got)
	}

	scores := ms.EventsOfType("score-create")
	if len(scores) != 1 {
		t.Fatalf("score events = %d, want 1", len(scores))
	}
	if ScoreName(scores[0]) != "accuracy" {
		t.Errorf("score name = %v, want accuracy", ScoreName(scores[0]))
	}
	v, ok := ScoreValue(scores[0])
	if !ok || v != 0.75 {
		t.Errorf("score value = %v (%v), want 0.75", v, ok)
	}
}

func TestMockServerReset(t *testing.T) {
	ms := NewMockServer()
	defer ms.Close()

	client, err := ms.NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Shutdown(context.Background())

	ctx := context.Background()
	if _, err := client.NewTrace().Name("x").Create(ctx); err != nil {
		t.Fatalf("trace create failed: %v", err)
	}
	if err := client.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	ms.Reset()

	if ms.RequestCount() != 0 || len(ms.Events()) != 0 {
		t.Error("Reset should clear recorded requests and events")
	}
}

func TestMockServerRespondWithError(t *testing.T) {
	ms := NewMockServer()
	defer ms.Close()

	ms.RespondWithError(http.StatusServiceUnavailable, "down for maintenance")

	client, err := ms.NewClient(
		langfuse.WithMaxRetries(1),
		langfuse.WithRetryDelay(time.Millisecond),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Shutdown(context.Background())

	ctx := context.Background()
	if _, err := client.NewTrace().Name("failing").Create(ctx); err != nil {
		t.Fatalf("trace create failed: %v", err)
	}
	if err := client.Flush(ctx); err == nil {
		t.Fatal("Flush should fail when the server returns 503")
	}
}
