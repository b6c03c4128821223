// Package evaluation holds the evaluation data model for the DOJ fraud
// detection agent and the Reporter that forwards evaluation scores to
// Langfuse.
//
// Reporting is strictly best-effort: a Reporter never returns an error
// from its reporting operations. Failures are logged and collapse to an
// empty trace id, so the evaluation pipeline's correctness never
// depends on the tracing backend being reachable.
package evaluation
