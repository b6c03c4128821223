package evaluation

import (
	"time"
)

// TestCase is a single fraud-detection scenario the agent is evaluated
// against.
type TestCase struct {
	// Title identifies the case in scores and trace metadata.
	Title string `json:"title" yaml:"title"`

	// Description is an optional human-readable summary of the case.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Category groups related cases, e.g. "healthcare" or "securities".
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// ExpectedFraudFlag is the ground-truth label.
	ExpectedFraudFlag bool `json:"expected_fraud_flag" yaml:"expected_fraud_flag"`
}

// Prediction is the agent's output for a single test case.
type Prediction struct {
	// FraudFlag is the predicted label.
	FraudFlag bool `json:"fraud_flag"`

	// Confidence is the model's self-reported confidence in [0,1].
	Confidence float64 `json:"confidence,omitempty"`

	// Reasoning is the model's free-form justification.
	Reasoning string `json:"reasoning,omitempty"`
}

// LLMJudgment holds an LLM-as-a-judge assessment of one case result.
type LLMJudgment struct {
	// OverallQuality is the judge's quality rating on a 0-10 scale.
	OverallQuality float64 `json:"overall_quality"`

	// Reasoning is the judge's free-form justification.
	Reasoning string `json:"reasoning,omitempty"`
}

// CaseResult is the per-case detail record of an evaluation run. The
// slice of CaseResults is ordered to pair positionally with the test
// cases that produced them.
type CaseResult struct {
	// OverallCorrect reports whether the prediction matched the
	// expected label.
	OverallCorrect bool `json:"overall_correct"`

	// PredictedFraudFlag is the label the agent produced.
	PredictedFraudFlag bool `json:"predicted_fraud_flag,omitempty"`

	// LLMJudgment is set when an LLM judge scored this case.
	LLMJudgment *LLMJudgment `json:"llm_judgment,omitempty"`
}

// EvaluationResult aggregates the metrics of one full evaluation run.
type EvaluationResult struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`

	// Timestamp records when the evaluation ran.
	Timestamp time.Time `json:"timestamp"`

	// DetailedResults holds one entry per evaluated case, in case
	// order.
	DetailedResults []CaseResult `json:"detailed_results,omitempty"`

	// RagasScores carries externally computed RAGAS metrics, passed
	// through opaquely. Values may be non-numeric; only numeric values
	// are reported.
	RagasScores map[string]any `json:"ragas_scores,omitempty"`
}

// OverallQuality returns the unweighted mean of accuracy, precision,
// recall, and F1.
func (r *EvaluationResult) OverallQuality() float64 {
	return (r.Accuracy + r.Precision + r.Recall + r.F1Score) / 4
}

// numericValue coerces a RAGAS score value to float64. Non-numeric
// values report ok=false and are skipped by the reporter.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
