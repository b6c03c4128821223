// Package langfuse is a small client for the Langfuse ingestion API.
//
// It covers the slice of Langfuse that the evaluation pipeline needs:
// creating traces, spans, and scores, delivered in batches with
// best-effort semantics, plus synchronous Flush and graceful Shutdown.
//
// Create a client and record a trace:
//
//	client, err := langfuse.New(
//	    os.Getenv("LANGFUSE_PUBLIC_KEY"),
//	    os.Getenv("LANGFUSE_SECRET_KEY"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown(context.Background())
//
//	trace, err := client.NewTrace().
//	    Name("evaluation-run").
//	    Metadata(langfuse.Metadata{"model": "gpt-4o"}).
//	    Create(ctx)
//
//	trace.ScoreNumeric(ctx, "accuracy", 0.92)
//	client.Flush(ctx)
//
// Events are queued locally and sent in batches. Failed batches are
// retried with exponential backoff; events may still be lost if the
// process exits before Shutdown or all retries are exhausted. Call
// [Client.Flush] at natural breakpoints when delivery matters.
//
// The Client is safe for concurrent use. Individual builder instances
// (TraceBuilder, SpanBuilder, ScoreBuilder) are not.
package langfuse

// Version is the client version, used in the User-Agent header.
const Version = "0.3.0"
