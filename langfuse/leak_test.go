package langfuse

import (
	"context"
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies that the whole package leaves no goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("testing.(*T).Run"),
		goleak.IgnoreTopFunction("net/http.(*http2ClientConn).readLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func TestShutdownStopsBackgroundGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("testing.(*T).Run"),
	)

	server, _ := ingestionServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx := context.Background()
	if _, err := client.NewTrace().Name("leak-check").Create(ctx); err != nil {
		t.Fatalf("trace create failed: %v", err)
	}
	if err := client.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}
