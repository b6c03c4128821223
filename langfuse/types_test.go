package langfuse

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMetadataMerge(t *testing.T) {
	m := Metadata{"model": "gpt-4o", "kind": "aggregate"}
	got := m.Merge(Metadata{"kind": "override", "extra": 1})

	if got["model"] != "gpt-4o" {
		t.Errorf("model = %v, want gpt-4o", got["model"])
	}
	if got["kind"] != "override" {
		t.Errorf("kind = %v, want override (other wins on collision)", got["kind"])
	}
	if got["extra"] != 1 {
		t.Errorf("extra = %v, want 1", got["extra"])
	}
}

func TestMetadataClone(t *testing.T) {
	m := Metadata{"a": 1}
	c := m.Clone()
	c["a"] = 2

	if m["a"] != 1 {
		t.Error("Clone should not share storage with the original")
	}

	if Metadata(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestTimeMarshalJSON(t *testing.T) {
	zero, err := json.Marshal(Time{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(zero) != "null" {
		t.Errorf("zero Time = %s, want null", zero)
	}

	ts := Time{Time: time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)}
	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"2025-06-15T12:30:00Z"` {
		t.Errorf("Time = %s, want RFC3339", b)
	}
}

func TestTimeUnmarshalJSON(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"2025-06-15T12:30:00.5Z"`), &ts); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	want := time.Date(2025, 6, 15, 12, 30, 0, 500000000, time.UTC)
	if !ts.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", ts.Time, want)
	}
}

func TestAPIErrorIs(t *testing.T) {
	err := error(&APIError{StatusCode: 429, Message: "slow down"})

	if !errors.Is(err, ErrRateLimited) {
		t.Error("429 should match ErrRateLimited")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("429 should not match ErrNotFound")
	}
}

func TestAPIErrorIsRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, false},
		{401, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
	}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		if got := err.IsRetryable(); got != tt.want {
			t.Errorf("IsRetryable(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestShutdownErrorUnwrap(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := &ShutdownError{Cause: cause, PendingEvents: 10}

	if !errors.Is(err, cause) {
		t.Error("ShutdownError should unwrap to its cause")
	}
}
