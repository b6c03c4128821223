// Command doj-eval-report forwards the scores of a completed fraud
// detection evaluation run to Langfuse.
//
// It reads the evaluation result JSON produced by the evaluation
// pipeline together with the test case suite, pushes all aggregate and
// per-case scores, and prints the created trace id.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Alicelibinguo5/doj-legal-reseach-agent/evaluation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		resultPath = flag.String("result", "evaluation_result.json", "path to the evaluation result JSON file")
		suitePath  = flag.String("suite", "test_cases.yaml", "path to the test case suite YAML file")
		model      = flag.String("model", "", "name of the evaluated model (required)")
		provider   = flag.String("provider", "", "provider of the evaluated model")
		timeout    = flag.Duration("timeout", 60*time.Second, "overall timeout for reporting")
		verbose    = flag.Bool("v", false, "enable verbose logging")
	)
	flag.Parse()

	if *model == "" {
		flag.Usage()
		return fmt.Errorf("-model is required")
	}

	// Best effort, a missing .env file is fine.
	_ = godotenv.Load()

	logger, err := newLogger(*verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	result, err := evaluation.LoadResult(*resultPath)
	if err != nil {
		return fmt.Errorf("load result: %w", err)
	}

	cases, err := evaluation.LoadSuite(*suitePath)
	if err != nil {
		return fmt.Errorf("load suite: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reporter := evaluation.New(evaluation.WithLogger(logger))
	defer reporter.Close(ctx)

	if !reporter.Enabled() {
		return fmt.Errorf("langfuse tracing is disabled, set LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY")
	}

	traceID := reporter.TraceEvaluationRun(ctx, result, *model, *provider, cases, nil)
	if traceID == "" {
		return fmt.Errorf("reporting failed, see log output")
	}

	fmt.Println(traceID)
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
