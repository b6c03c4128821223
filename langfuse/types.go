package langfuse

import (
	"encoding/json"
	"time"
)

// Metadata holds arbitrary JSON-serializable key-value pairs attached
// to traces, spans, and scores.
type Metadata map[string]any

// Merge merges other into m. Values from other overwrite values in m
// for duplicate keys. Returns m for chaining.
func (m Metadata) Merge(other Metadata) Metadata {
	for k, v := range other {
		m[k] = v
	}
	return m
}

// Clone creates a shallow copy of the metadata.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Time wraps time.Time with Langfuse-compatible JSON marshaling.
// Zero times marshal to JSON null.
type Time struct {
	time.Time
}

// IsZero reports whether the time is the zero value. Used by
// encoding/json for omitempty checks.
func (t Time) IsZero() bool {
	return t.Time.IsZero()
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}

// Now returns the current time as a Time.
func Now() Time {
	return Time{Time: time.Now()}
}

// ScoreDataType represents the data type of a score.
type ScoreDataType string

const (
	ScoreDataTypeNumeric     ScoreDataType = "NUMERIC"
	ScoreDataTypeCategorical ScoreDataType = "CATEGORICAL"
	ScoreDataTypeBoolean     ScoreDataType = "BOOLEAN"
)

// String returns the string representation of the score data type.
func (s ScoreDataType) String() string { return string(s) }

// ObservationLevel represents the severity level of an observation.
type ObservationLevel string

const (
	ObservationLevelDebug   ObservationLevel = "DEBUG"
	ObservationLevelDefault ObservationLevel = "DEFAULT"
	ObservationLevelWarning ObservationLevel = "WARNING"
	ObservationLevelError   ObservationLevel = "ERROR"
)

// HealthStatus represents the response from the health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
