package langfuse

import "context"

// Tracer defines the core tracing capability used by callers that do
// not need the full Client surface. It is implemented by *Client and
// can be used for dependency injection and testing.
type Tracer interface {
	// NewTrace creates a new trace builder.
	NewTrace() *TraceBuilder

	// Flush sends all pending events to Langfuse. It blocks until all
	// events are sent or the context is cancelled.
	Flush(ctx context.Context) error

	// Shutdown gracefully shuts down the client, flushing pending
	// events. The client must not be used afterwards.
	Shutdown(ctx context.Context) error
}

// Ensure Client implements Tracer at compile time.
var _ Tracer = (*Client)(nil)

// Flusher defines the interface for types that can flush pending data.
type Flusher interface {
	Flush(ctx context.Context) error
}

var _ Flusher = (*Client)(nil)
