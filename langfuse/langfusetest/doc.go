// Package langfusetest provides test utilities for code that reports to
// Langfuse. The mock server records ingestion batches and exposes the
// decoded events for assertions.
package langfusetest
