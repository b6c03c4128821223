package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverallQuality(t *testing.T) {
	r := &EvaluationResult{
		Accuracy:  0.8,
		Precision: 0.75,
		Recall:    0.9,
		F1Score:   0.82,
	}
	assert.InDelta(t, 0.8175, r.OverallQuality(), 1e-9)

	zero := &EvaluationResult{}
	assert.Equal(t, 0.0, zero.OverallQuality())
}

func TestNumericValue(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"float64", 0.91, 0.91, true},
		{"float32", float32(0.5), 0.5, true},
		{"int", 1, 1, true},
		{"int64", int64(7), 7, true},
		{"string", "0.9", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numericValue(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
