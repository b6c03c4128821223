package evaluation

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Alicelibinguo5/doj-legal-reseach-agent/langfuse"
)

// EnvEnableTracing toggles score reporting. Reporting is enabled unless
// this is set to a false value.
const EnvEnableTracing = "ENABLE_LANGFUSE_TRACING"

// evaluationType tags every run trace so Langfuse dashboards can filter
// on this pipeline.
const evaluationType = "fraud_detection"

// ReporterConfig holds the resolved configuration of a Reporter.
type ReporterConfig struct {
	// PublicKey and SecretKey are the Langfuse credentials.
	PublicKey string
	SecretKey string

	// Host is the Langfuse base URL.
	Host string

	// Enabled toggles reporting. Nil means "not explicitly set" and
	// resolves from the environment.
	Enabled *bool

	// Logger receives reporter warnings and errors. Defaults to a nop
	// logger.
	Logger *zap.Logger

	// Client, when set, is used instead of constructing a client from
	// the credentials. Intended for tests.
	Client *langfuse.Client
}

// Option configures a Reporter.
type Option func(*ReporterConfig)

// WithCredentials sets the Langfuse public and secret keys explicitly.
func WithCredentials(publicKey, secretKey string) Option {
	return func(c *ReporterConfig) {
		c.PublicKey = publicKey
		c.SecretKey = secretKey
	}
}

// WithHost sets the Langfuse host URL explicitly.
func WithHost(host string) Option {
	return func(c *ReporterConfig) {
		c.Host = host
	}
}

// WithEnabled sets the enabled flag explicitly, overriding the
// environment.
func WithEnabled(enabled bool) Option {
	return func(c *ReporterConfig) {
		c.Enabled = &enabled
	}
}

// WithLogger sets the logger used for reporter warnings and errors.
func WithLogger(logger *zap.Logger) Option {
	return func(c *ReporterConfig) {
		c.Logger = logger
	}
}

// WithClient injects a pre-built Langfuse client, bypassing credential
// resolution.
func WithClient(client *langfuse.Client) Option {
	return func(c *ReporterConfig) {
		c.Client = client
	}
}

// ResolveConfig fills unset fields of cfg from the environment and
// built-in defaults, in that order. getenv abstracts os.Getenv so the
// fallback chain is testable as a pure function.
func ResolveConfig(cfg ReporterConfig, getenv func(string) string) ReporterConfig {
	if cfg.Enabled == nil {
		enabled := !isFalse(getenv(EnvEnableTracing))
		cfg.Enabled = &enabled
	}
	if cfg.PublicKey == "" {
		cfg.PublicKey = getenv(langfuse.EnvPublicKey)
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = getenv(langfuse.EnvSecretKey)
	}
	if cfg.Host == "" {
		cfg.Host = getenv(langfuse.EnvHost)
	}
	if cfg.Host == "" {
		cfg.Host = langfuse.DefaultBaseURL
	}
	return cfg
}

// isFalse reports whether an environment value explicitly disables a
// flag. The empty string keeps the default (enabled).
func isFalse(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "0", "no", "off":
		return true
	default:
		return false
	}
}

// Reporter forwards evaluation scores to Langfuse.
//
// The enabled/disabled state is latched at construction and never
// changes for the lifetime of the instance. A disabled Reporter is
// fully functional: every operation is a cheap no-op returning an empty
// trace id.
type Reporter struct {
	enabled bool
	client  *langfuse.Client
	logger  *zap.Logger
}

// New constructs a Reporter. It never fails: missing credentials or a
// client construction error downgrade the reporter to disabled with a
// log entry, so callers can report scores unconditionally.
func New(opts ...Option) *Reporter {
	var cfg ReporterConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg = ResolveConfig(cfg, os.Getenv)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Reporter{logger: logger}

	if !*cfg.Enabled {
		logger.Info("langfuse tracing disabled")
		return r
	}

	if cfg.Client != nil {
		r.client = cfg.Client
		r.enabled = true
		return r
	}

	if cfg.PublicKey == "" || cfg.SecretKey == "" {
		logger.Warn("langfuse credentials not found, tracing disabled",
			zap.String("public_key_env", langfuse.EnvPublicKey),
			zap.String("secret_key_env", langfuse.EnvSecretKey))
		return r
	}

	client, err := langfuse.New(cfg.PublicKey, cfg.SecretKey,
		langfuse.WithBaseURL(cfg.Host),
		langfuse.WithLogger(newZapAdapter(logger)),
	)
	if err != nil {
		logger.Error("failed to initialize langfuse client, tracing disabled", zap.Error(err))
		return r
	}

	logger.Info("langfuse client initialized", zap.String("host", cfg.Host))
	r.client = client
	r.enabled = true
	return r
}

// Enabled reports whether the reporter will emit scores.
func (r *Reporter) Enabled() bool {
	return r.enabled
}

// TraceEvaluationRun creates a trace for a full evaluation run and
// pushes aggregate, per-case, and RAGAS scores into it. It returns the
// trace id, or "" when the reporter is disabled or reporting failed.
// Failures are logged once; scores emitted before the failure may have
// already reached the backend.
func (r *Reporter) TraceEvaluationRun(ctx context.Context, result *EvaluationResult, modelName, modelProvider string, testCases []TestCase, metadata map[string]any) string {
	if !r.enabled {
		return ""
	}

	traceID, err := r.reportRun(ctx, result, modelName, modelProvider, testCases, metadata)
	if err != nil {
		r.logger.Error("failed to report evaluation run", zap.Error(err), zap.String("model", modelName))
		return ""
	}

	r.logger.Info("evaluation trace created", zap.String("trace_id", traceID))
	return traceID
}

func (r *Reporter) reportRun(ctx context.Context, result *EvaluationResult, modelName, modelProvider string, testCases []TestCase, metadata map[string]any) (string, error) {
	// Caller-supplied keys override the fixed keys on collision.
	traceMeta := langfuse.Metadata{
		"model_name":           modelName,
		"model_provider":       modelProvider,
		"evaluation_timestamp": result.Timestamp,
		"test_cases_count":     len(testCases),
		"evaluation_type":      evaluationType,
	}.Merge(metadata)

	name := fmt.Sprintf("%s_evaluation_%s", evaluationType, modelName)

	trace, err := r.client.NewTrace().
		Name(name).
		Metadata(traceMeta).
		Tags([]string{evaluationType, "evaluation"}).
		Create(ctx)
	if err != nil {
		return "", fmt.Errorf("create trace: %w", err)
	}

	span, err := trace.NewSpan().Name(name).Create(ctx)
	if err != nil {
		return "", fmt.Errorf("create span: %w", err)
	}

	if err := r.pushOverallScores(ctx, trace, result, modelName); err != nil {
		return "", err
	}
	if err := r.pushCaseScores(ctx, trace, result, testCases); err != nil {
		return "", err
	}
	if err := r.pushRagasScores(ctx, trace, result.RagasScores); err != nil {
		return "", err
	}

	err = span.EndWithOutput(ctx, map[string]any{
		"accuracy":    result.Accuracy,
		"precision":   result.Precision,
		"recall":      result.Recall,
		"f1_score":    result.F1Score,
		"total_cases": len(testCases),
	})
	if err != nil {
		return "", fmt.Errorf("end span: %w", err)
	}

	if err := r.client.Flush(ctx); err != nil {
		return "", fmt.Errorf("flush: %w", err)
	}

	return trace.ID(), nil
}

// pushOverallScores emits the run-level aggregate scores.
func (r *Reporter) pushOverallScores(ctx context.Context, trace *langfuse.TraceContext, result *EvaluationResult, modelName string) error {
	scores := []struct {
		name    string
		value   float64
		comment string
	}{
		{"fraud_detection_accuracy", result.Accuracy, fmt.Sprintf("Overall fraud detection accuracy for %s", modelName)},
		{"fraud_detection_precision", result.Precision, fmt.Sprintf("Fraud detection precision for %s", modelName)},
		{"fraud_detection_recall", result.Recall, fmt.Sprintf("Fraud detection recall for %s", modelName)},
		{"fraud_detection_f1", result.F1Score, fmt.Sprintf("Fraud detection F1 score for %s", modelName)},
		{"fraud_detection_overall_quality", result.OverallQuality(), fmt.Sprintf("Overall quality score for %s", modelName)},
	}

	for _, s := range scores {
		err := trace.NewScore().
			Name(s.name).
			NumericValue(s.value).
			Comment(s.comment).
			Create(ctx)
		if err != nil {
			return fmt.Errorf("push score %s: %w", s.name, err)
		}
	}
	return nil
}

// pushCaseScores emits one correctness score per case, pairing detailed
// results with test cases positionally. Pairing stops at the shorter
// sequence; a length mismatch is not an error.
func (r *Reporter) pushCaseScores(ctx context.Context, trace *langfuse.TraceContext, result *EvaluationResult, testCases []TestCase) error {
	n := len(result.DetailedResults)
	if len(testCases) < n {
		n = len(testCases)
	}

	for i := 0; i < n; i++ {
		detail := result.DetailedResults[i]
		tc := testCases[i]

		value := 0.0
		if detail.OverallCorrect {
			value = 1.0
		}
		err := trace.NewScore().
			Name(fmt.Sprintf("case_%d_accuracy", i+1)).
			NumericValue(value).
			Comment(fmt.Sprintf("Case %d: %s", i+1, tc.Title)).
			Create(ctx)
		if err != nil {
			return fmt.Errorf("push case %d score: %w", i+1, err)
		}

		if detail.LLMJudgment != nil {
			// Judge ratings are 0-10; normalize to the 0-1 score
			// convention. Out-of-range raw values are passed through
			// unclamped.
			err := trace.NewScore().
				Name(fmt.Sprintf("case_%d_llm_judge_quality", i+1)).
				NumericValue(detail.LLMJudgment.OverallQuality / 10.0).
				Comment(fmt.Sprintf("LLM judge quality for case %d: %s", i+1, tc.Title)).
				Create(ctx)
			if err != nil {
				return fmt.Errorf("push case %d judge score: %w", i+1, err)
			}
		}
	}
	return nil
}

// pushRagasScores emits one score per numeric RAGAS metric. Non-numeric
// values are skipped. Keys are sorted for deterministic emission order.
func (r *Reporter) pushRagasScores(ctx context.Context, trace *langfuse.TraceContext, ragasScores map[string]any) error {
	if len(ragasScores) == 0 {
		return nil
	}

	names := make([]string, 0, len(ragasScores))
	for name := range ragasScores {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, ok := numericValue(ragasScores[name])
		if !ok {
			continue
		}
		err := trace.NewScore().
			Name("ragas_" + name).
			NumericValue(value).
			Comment(fmt.Sprintf("RAGAS %s score", name)).
			Create(ctx)
		if err != nil {
			return fmt.Errorf("push ragas score %s: %w", name, err)
		}
	}
	return nil
}

// TraceSingleCase creates a trace for a single case evaluation and
// pushes its correctness score. It returns the trace id, or "" when the
// reporter is disabled or reporting failed.
func (r *Reporter) TraceSingleCase(ctx context.Context, testCase TestCase, prediction Prediction, modelName string, metadata map[string]any) string {
	if !r.enabled {
		return ""
	}

	traceID, err := r.reportSingleCase(ctx, testCase, prediction, modelName, metadata)
	if err != nil {
		r.logger.Error("failed to report single case", zap.Error(err), zap.String("case", testCase.Title))
		return ""
	}
	return traceID
}

func (r *Reporter) reportSingleCase(ctx context.Context, testCase TestCase, prediction Prediction, modelName string, metadata map[string]any) (string, error) {
	name := fmt.Sprintf("single_case_evaluation_%s", modelName)

	traceMeta := langfuse.Metadata{
		"model_name":      modelName,
		"test_case_title": testCase.Title,
		"expected_fraud":  testCase.ExpectedFraudFlag,
		"predicted_fraud": prediction.FraudFlag,
	}.Merge(metadata)

	trace, err := r.client.NewTrace().
		Name(name).
		Metadata(traceMeta).
		Create(ctx)
	if err != nil {
		return "", fmt.Errorf("create trace: %w", err)
	}

	span, err := trace.NewSpan().Name(name).Create(ctx)
	if err != nil {
		return "", fmt.Errorf("create span: %w", err)
	}

	correct := prediction.FraudFlag == testCase.ExpectedFraudFlag
	value := 0.0
	if correct {
		value = 1.0
	}
	err = trace.NewScore().
		Name("case_accuracy").
		NumericValue(value).
		Comment(fmt.Sprintf("Case accuracy: %s", testCase.Title)).
		Create(ctx)
	if err != nil {
		return "", fmt.Errorf("push score: %w", err)
	}

	err = span.EndWithOutput(ctx, map[string]any{
		"correct":   correct,
		"expected":  testCase.ExpectedFraudFlag,
		"predicted": prediction.FraudFlag,
	})
	if err != nil {
		return "", fmt.Errorf("end span: %w", err)
	}

	if err := r.client.Flush(ctx); err != nil {
		return "", fmt.Errorf("flush: %w", err)
	}

	return trace.ID(), nil
}

// Close shuts down the underlying client, flushing any buffered events.
// It is a no-op for a disabled reporter; shutdown errors are logged and
// swallowed.
func (r *Reporter) Close(ctx context.Context) {
	if !r.enabled || r.client == nil {
		return
	}
	if err := r.client.Shutdown(ctx); err != nil {
		r.logger.Error("error shutting down langfuse client", zap.Error(err))
		return
	}
	r.logger.Info("langfuse client shut down")
}

// zapAdapter bridges a zap logger to the langfuse client's
// StructuredLogger interface so client internals log through the same
// logger as the reporter.
type zapAdapter struct {
	sugar *zap.SugaredLogger
}

func newZapAdapter(logger *zap.Logger) *zapAdapter {
	return &zapAdapter{sugar: logger.Sugar()}
}

func (a *zapAdapter) Debug(msg string, args ...any) { a.sugar.Debugw(msg, args...) }
func (a *zapAdapter) Info(msg string, args ...any)  { a.sugar.Infow(msg, args...) }
func (a *zapAdapter) Warn(msg string, args ...any)  { a.sugar.Warnw(msg, args...) }
func (a *zapAdapter) Error(msg string, args ...any) { a.sugar.Errorw(msg, args...) }

var _ langfuse.StructuredLogger = (*zapAdapter)(nil)
