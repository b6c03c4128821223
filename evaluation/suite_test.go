package evaluation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSuite(t *testing.T) {
	path := writeFile(t, "cases.yaml", `
cases:
  - title: Medicare billing scheme
    description: Upcoding of outpatient procedures
    category: healthcare
    expected_fraud_flag: true
  - title: Routine contract dispute
    category: contracts
    expected_fraud_flag: false
`)

	cases, err := LoadSuite(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "Medicare billing scheme", cases[0].Title)
	assert.Equal(t, "healthcare", cases[0].Category)
	assert.True(t, cases[0].ExpectedFraudFlag)
	assert.False(t, cases[1].ExpectedFraudFlag)
}

func TestLoadSuiteErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSuite(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty suite", func(t *testing.T) {
		path := writeFile(t, "empty.yaml", "cases: []\n")
		_, err := LoadSuite(path)
		assert.ErrorContains(t, err, "no cases")
	})

	t.Run("case without title", func(t *testing.T) {
		path := writeFile(t, "untitled.yaml", `
cases:
  - category: healthcare
    expected_fraud_flag: true
`)
		_, err := LoadSuite(path)
		assert.ErrorContains(t, err, "no title")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "cases: [title: {")
		_, err := LoadSuite(path)
		assert.Error(t, err)
	})
}

func TestLoadResult(t *testing.T) {
	path := writeFile(t, "result.json", `{
  "accuracy": 0.8,
  "precision": 0.75,
  "recall": 0.9,
  "f1_score": 0.82,
  "timestamp": "2025-06-15T12:00:00Z",
  "detailed_results": [
    {"overall_correct": true, "predicted_fraud_flag": true},
    {"overall_correct": false, "llm_judgment": {"overall_quality": 7}}
  ],
  "ragas_scores": {"faithfulness": 0.91, "notes": "pending"}
}`)

	result, err := LoadResult(path)
	require.NoError(t, err)

	assert.Equal(t, 0.8, result.Accuracy)
	assert.Equal(t, 0.82, result.F1Score)
	assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), result.Timestamp)
	require.Len(t, result.DetailedResults, 2)
	assert.True(t, result.DetailedResults[0].OverallCorrect)
	require.NotNil(t, result.DetailedResults[1].LLMJudgment)
	assert.Equal(t, 7.0, result.DetailedResults[1].LLMJudgment.OverallQuality)
	assert.Equal(t, 0.91, result.RagasScores["faithfulness"])
}

func TestLoadResultErrors(t *testing.T) {
	_, err := LoadResult(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeFile(t, "bad.json", "{not json")
	_, err = LoadResult(path)
	assert.Error(t, err)
}
