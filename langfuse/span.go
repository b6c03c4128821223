package langfuse

import (
	"context"
	"time"
)

// SpanBuilder provides a fluent interface for creating spans.
//
// SpanBuilder is NOT safe for concurrent use. Each builder instance
// should be created, configured, and used within a single goroutine.
type SpanBuilder struct {
	ctx  *TraceContext
	span *spanEvent
}

// ID sets the span ID.
func (b *SpanBuilder) ID(id string) *SpanBuilder {
	b.span.ID = id
	return b
}

// Name sets the span name.
func (b *SpanBuilder) Name(name string) *SpanBuilder {
	b.span.Name = name
	return b
}

// StartTime sets the start time.
func (b *SpanBuilder) StartTime(t time.Time) *SpanBuilder {
	b.span.StartTime = Time{Time: t}
	return b
}

// Input sets the input.
func (b *SpanBuilder) Input(input any) *SpanBuilder {
	b.span.Input = input
	return b
}

// Metadata sets the metadata.
func (b *SpanBuilder) Metadata(metadata Metadata) *SpanBuilder {
	b.span.Metadata = metadata
	return b
}

// Level sets the observation level.
func (b *SpanBuilder) Level(level ObservationLevel) *SpanBuilder {
	b.span.Level = level
	return b
}

// ParentObservationID sets the parent observation ID.
func (b *SpanBuilder) ParentObservationID(id string) *SpanBuilder {
	b.span.ParentObservationID = id
	return b
}

// Validate validates the span builder configuration.
func (b *SpanBuilder) Validate() error {
	if b.span.ID == "" {
		return NewValidationError("id", "span ID cannot be empty")
	}
	if b.span.TraceID == "" {
		return NewValidationError("traceId", "trace ID cannot be empty")
	}
	return nil
}

// Create queues the span and returns a SpanContext.
func (b *SpanBuilder) Create(ctx context.Context) (*SpanContext, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	event := ingestionEvent{
		ID:        generateID(),
		Type:      eventTypeSpanCreate,
		Timestamp: Now(),
		Body:      b.span,
	}

	if err := b.ctx.client.queueEvent(ctx, event); err != nil {
		return nil, err
	}

	return &SpanContext{
		trace:  b.ctx,
		spanID: b.span.ID,
	}, nil
}

// SpanContext provides context for a span.
//
// SpanContext is safe for concurrent use. Builders created from it are
// not.
type SpanContext struct {
	trace  *TraceContext
	spanID string
}

// ID returns the span ID.
func (s *SpanContext) ID() string {
	return s.spanID
}

// TraceID returns the trace ID this span belongs to.
func (s *SpanContext) TraceID() string {
	return s.trace.traceID
}

// Update returns a builder for updating the span.
func (s *SpanContext) Update() *SpanUpdateBuilder {
	return &SpanUpdateBuilder{
		ctx: s,
		update: &spanEvent{
			ID:      s.spanID,
			TraceID: s.trace.traceID,
		},
	}
}

// End marks the span as ended now.
func (s *SpanContext) End(ctx context.Context) error {
	return s.Update().EndTime(time.Now()).Apply(ctx)
}

// EndWithOutput marks the span as ended now and records its output.
func (s *SpanContext) EndWithOutput(ctx context.Context, output any) error {
	return s.Update().EndTime(time.Now()).Output(output).Apply(ctx)
}

// SpanUpdateBuilder provides a fluent interface for updating spans.
//
// SpanUpdateBuilder is NOT safe for concurrent use.
type SpanUpdateBuilder struct {
	ctx    *SpanContext
	update *spanEvent
}

// Name sets the span name.
func (b *SpanUpdateBuilder) Name(name string) *SpanUpdateBuilder {
	b.update.Name = name
	return b
}

// EndTime sets the end time.
func (b *SpanUpdateBuilder) EndTime(t time.Time) *SpanUpdateBuilder {
	b.update.EndTime = Time{Time: t}
	return b
}

// Input sets the input.
func (b *SpanUpdateBuilder) Input(input any) *SpanUpdateBuilder {
	b.update.Input = input
	return b
}

// Output sets the output.
func (b *SpanUpdateBuilder) Output(output any) *SpanUpdateBuilder {
	b.update.Output = output
	return b
}

// Metadata sets the metadata.
func (b *SpanUpdateBuilder) Metadata(metadata Metadata) *SpanUpdateBuilder {
	b.update.Metadata = metadata
	return b
}

// Level sets the observation level.
func (b *SpanUpdateBuilder) Level(level ObservationLevel) *SpanUpdateBuilder {
	b.update.Level = level
	return b
}

// StatusMessage sets the status message.
func (b *SpanUpdateBuilder) StatusMessage(msg string) *SpanUpdateBuilder {
	b.update.StatusMessage = msg
	return b
}

// Apply queues the update.
func (b *SpanUpdateBuilder) Apply(ctx context.Context) error {
	event := ingestionEvent{
		ID:        generateID(),
		Type:      eventTypeSpanUpdate,
		Timestamp: Now(),
		Body:      b.update,
	}

	return b.ctx.trace.client.queueEvent(ctx, event)
}
