package langfuse

import (
	"context"
)

// ScoreBuilder provides a fluent interface for creating scores.
//
// ScoreBuilder is NOT safe for concurrent use. Each builder instance
// should be created, configured, and used within a single goroutine.
//
// Example:
//
//	err := trace.NewScore().
//	    Name("accuracy").
//	    NumericValue(0.95).
//	    Comment("run-level accuracy").
//	    Create(ctx)
type ScoreBuilder struct {
	ctx   *TraceContext
	score *scoreEvent
}

// ID sets the score ID.
func (b *ScoreBuilder) ID(id string) *ScoreBuilder {
	b.score.ID = id
	return b
}

// Name sets the score name. Name is required.
func (b *ScoreBuilder) Name(name string) *ScoreBuilder {
	b.score.Name = name
	return b
}

// NumericValue sets a numeric score value.
func (b *ScoreBuilder) NumericValue(value float64) *ScoreBuilder {
	b.score.Value = value
	b.score.DataType = ScoreDataTypeNumeric
	return b
}

// BooleanValue sets a boolean score value. Langfuse represents boolean
// scores as 0/1.
func (b *ScoreBuilder) BooleanValue(value bool) *ScoreBuilder {
	if value {
		b.score.Value = 1
	} else {
		b.score.Value = 0
	}
	b.score.DataType = ScoreDataTypeBoolean
	return b
}

// Comment sets the comment.
func (b *ScoreBuilder) Comment(comment string) *ScoreBuilder {
	b.score.Comment = comment
	return b
}

// ObservationID attaches the score to a specific observation.
func (b *ScoreBuilder) ObservationID(id string) *ScoreBuilder {
	b.score.ObservationID = id
	return b
}

// Metadata sets the metadata.
func (b *ScoreBuilder) Metadata(metadata Metadata) *ScoreBuilder {
	b.score.Metadata = metadata
	return b
}

// Validate validates the score builder configuration.
func (b *ScoreBuilder) Validate() error {
	if b.score.Name == "" {
		return NewValidationError("name", "score name is required")
	}
	if b.score.TraceID == "" {
		return NewValidationError("traceId", "trace ID cannot be empty")
	}
	return nil
}

// Create queues the score.
func (b *ScoreBuilder) Create(ctx context.Context) error {
	if err := b.Validate(); err != nil {
		return err
	}

	event := ingestionEvent{
		ID:        generateID(),
		Type:      eventTypeScoreCreate,
		Timestamp: Now(),
		Body:      b.score,
	}

	return b.ctx.client.queueEvent(ctx, event)
}
