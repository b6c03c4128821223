package langfuse

import (
	"github.com/google/uuid"
)

// Event types for the ingestion API.
const (
	eventTypeTraceCreate = "trace-create"
	eventTypeTraceUpdate = "trace-update"
	eventTypeSpanCreate  = "span-create"
	eventTypeSpanUpdate  = "span-update"
	eventTypeScoreCreate = "score-create"
)

// API endpoint paths.
var endpoints = struct {
	Health    string
	Ingestion string
}{
	Health:    "/api/public/health",
	Ingestion: "/api/public/ingestion",
}

// ingestionRequest represents a batch ingestion request.
type ingestionRequest struct {
	Batch []ingestionEvent `json:"batch"`
}

// ingestionEvent represents a single event in a batch.
type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp Time   `json:"timestamp"`
	Body      any    `json:"body"`
}

// traceEvent is the body of trace-create and trace-update events.
type traceEvent struct {
	ID          string   `json:"id"`
	Timestamp   Time     `json:"timestamp,omitempty"`
	Name        string   `json:"name,omitempty"`
	Input       any      `json:"input,omitempty"`
	Output      any      `json:"output,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	SessionID   string   `json:"sessionId,omitempty"`
	Release     string   `json:"release,omitempty"`
	Environment string   `json:"environment,omitempty"`
}

// spanEvent is the body of span-create and span-update events.
type spanEvent struct {
	ID                  string           `json:"id"`
	TraceID             string           `json:"traceId,omitempty"`
	Name                string           `json:"name,omitempty"`
	StartTime           Time             `json:"startTime,omitempty"`
	EndTime             Time             `json:"endTime,omitempty"`
	Metadata            Metadata         `json:"metadata,omitempty"`
	Level               ObservationLevel `json:"level,omitempty"`
	StatusMessage       string           `json:"statusMessage,omitempty"`
	ParentObservationID string           `json:"parentObservationId,omitempty"`
	Input               any              `json:"input,omitempty"`
	Output              any              `json:"output,omitempty"`
	Environment         string           `json:"environment,omitempty"`
}

// scoreEvent is the body of a score-create event.
type scoreEvent struct {
	ID            string        `json:"id,omitempty"`
	TraceID       string        `json:"traceId"`
	ObservationID string        `json:"observationId,omitempty"`
	Name          string        `json:"name"`
	Value         any           `json:"value"`
	DataType      ScoreDataType `json:"dataType,omitempty"`
	Comment       string        `json:"comment,omitempty"`
	Environment   string        `json:"environment,omitempty"`
	Metadata      Metadata      `json:"metadata,omitempty"`
}

// generateID returns a random UUID v4 string.
func generateID() string {
	return uuid.NewString()
}
