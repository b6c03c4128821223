package evaluation

import (
	"context"
	"sync"
)

var (
	defaultMu       sync.Mutex
	defaultReporter *Reporter
)

// Default returns the process-wide Reporter, constructing it from the
// environment on first use.
func Default() *Reporter {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReporter == nil {
		defaultReporter = New()
	}
	return defaultReporter
}

// SetDefault replaces the process-wide Reporter. Intended for tests and
// for programs that configure the reporter explicitly.
func SetDefault(r *Reporter) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultReporter = r
}

// TraceEvaluation reports an evaluation run through the default
// Reporter. It returns the trace id, or "" when reporting is disabled
// or failed.
func TraceEvaluation(ctx context.Context, result *EvaluationResult, modelName, modelProvider string, testCases []TestCase, metadata map[string]any) string {
	r := Default()
	if !r.Enabled() {
		return ""
	}
	return r.TraceEvaluationRun(ctx, result, modelName, modelProvider, testCases, metadata)
}
