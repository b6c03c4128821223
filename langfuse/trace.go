package langfuse

import (
	"context"
)

// NewTraceID returns a fresh opaque trace identifier. Use it when the
// trace id must be known before the trace-create event is queued.
func NewTraceID() string {
	return generateID()
}

// TraceBuilder provides a fluent interface for creating traces.
//
// TraceBuilder is NOT safe for concurrent use. Each builder instance
// should be created, configured, and used within a single goroutine.
//
// Example:
//
//	trace, err := client.NewTrace().
//	    Name("evaluation-run").
//	    Metadata(langfuse.Metadata{"model": "gpt-4o"}).
//	    Create(ctx)
type TraceBuilder struct {
	client *Client
	trace  *traceEvent
}

// NewTrace creates a new trace builder.
func (c *Client) NewTrace() *TraceBuilder {
	return &TraceBuilder{
		client: c,
		trace: &traceEvent{
			ID:          generateID(),
			Timestamp:   Now(),
			Environment: c.config.Environment,
		},
	}
}

// ID sets the trace ID.
func (b *TraceBuilder) ID(id string) *TraceBuilder {
	b.trace.ID = id
	return b
}

// Name sets the trace name.
func (b *TraceBuilder) Name(name string) *TraceBuilder {
	b.trace.Name = name
	return b
}

// SessionID sets the session ID.
func (b *TraceBuilder) SessionID(sessionID string) *TraceBuilder {
	b.trace.SessionID = sessionID
	return b
}

// Input sets the trace input.
func (b *TraceBuilder) Input(input any) *TraceBuilder {
	b.trace.Input = input
	return b
}

// Output sets the trace output.
func (b *TraceBuilder) Output(output any) *TraceBuilder {
	b.trace.Output = output
	return b
}

// Metadata sets the trace metadata.
func (b *TraceBuilder) Metadata(metadata Metadata) *TraceBuilder {
	b.trace.Metadata = metadata
	return b
}

// Tags sets the trace tags.
func (b *TraceBuilder) Tags(tags []string) *TraceBuilder {
	b.trace.Tags = tags
	return b
}

// Release sets the release version.
func (b *TraceBuilder) Release(release string) *TraceBuilder {
	b.trace.Release = release
	return b
}

// Validate validates the trace builder configuration.
func (b *TraceBuilder) Validate() error {
	if b.trace.ID == "" {
		return NewValidationError("id", "trace ID cannot be empty")
	}
	return nil
}

// Create queues the trace and returns a TraceContext for adding
// observations and scores.
func (b *TraceBuilder) Create(ctx context.Context) (*TraceContext, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	event := ingestionEvent{
		ID:        generateID(),
		Type:      eventTypeTraceCreate,
		Timestamp: Now(),
		Body:      b.trace,
	}

	if err := b.client.queueEvent(ctx, event); err != nil {
		return nil, err
	}

	return &TraceContext{
		client:  b.client,
		traceID: b.trace.ID,
	}, nil
}

// TraceContext provides context for a trace and allows adding spans and
// scores.
//
// TraceContext is safe for concurrent use within a single trace.
// Builders created from it are not.
type TraceContext struct {
	client  *Client
	traceID string
}

// ID returns the trace ID.
func (t *TraceContext) ID() string {
	return t.traceID
}

// Update updates the trace.
func (t *TraceContext) Update() *TraceUpdateBuilder {
	return &TraceUpdateBuilder{
		ctx: t,
		update: &traceEvent{
			ID: t.traceID,
		},
	}
}

// NewSpan creates a new span builder in this trace.
func (t *TraceContext) NewSpan() *SpanBuilder {
	return &SpanBuilder{
		ctx: t,
		span: &spanEvent{
			ID:          generateID(),
			TraceID:     t.traceID,
			StartTime:   Now(),
			Environment: t.client.config.Environment,
		},
	}
}

// NewScore creates a new score builder for this trace.
func (t *TraceContext) NewScore() *ScoreBuilder {
	return &ScoreBuilder{
		ctx: t,
		score: &scoreEvent{
			TraceID:     t.traceID,
			Environment: t.client.config.Environment,
		},
	}
}

// ScoreNumeric adds a numeric score to this trace.
func (t *TraceContext) ScoreNumeric(ctx context.Context, name string, value float64) error {
	return t.NewScore().Name(name).NumericValue(value).Create(ctx)
}

// ScoreBoolean adds a boolean score to this trace.
func (t *TraceContext) ScoreBoolean(ctx context.Context, name string, value bool) error {
	return t.NewScore().Name(name).BooleanValue(value).Create(ctx)
}

// TraceUpdateBuilder provides a fluent interface for updating traces.
//
// TraceUpdateBuilder is NOT safe for concurrent use.
type TraceUpdateBuilder struct {
	ctx    *TraceContext
	update *traceEvent
}

// Name sets the trace name.
func (b *TraceUpdateBuilder) Name(name string) *TraceUpdateBuilder {
	b.update.Name = name
	return b
}

// Input sets the trace input.
func (b *TraceUpdateBuilder) Input(input any) *TraceUpdateBuilder {
	b.update.Input = input
	return b
}

// Output sets the trace output.
func (b *TraceUpdateBuilder) Output(output any) *TraceUpdateBuilder {
	b.update.Output = output
	return b
}

// Metadata sets the trace metadata.
func (b *TraceUpdateBuilder) Metadata(metadata Metadata) *TraceUpdateBuilder {
	b.update.Metadata = metadata
	return b
}

// Tags sets the trace tags.
func (b *TraceUpdateBuilder) Tags(tags []string) *TraceUpdateBuilder {
	b.update.Tags = tags
	return b
}

// Apply queues the update.
func (b *TraceUpdateBuilder) Apply(ctx context.Context) error {
	event := ingestionEvent{
		ID:        generateID(),
		Type:      eventTypeTraceUpdate,
		Timestamp: Now(),
		Body:      b.update,
	}

	return b.ctx.client.queueEvent(ctx, event)
}
