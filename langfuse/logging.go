package langfuse

import (
	"log/slog"
	"strings"
)

// StructuredLogger is the logging interface used by the client.
// It is satisfied by adapters over slog (see NewSlogAdapter) and by any
// structured logger with the same leveled signature.
type StructuredLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Debug(msg string, args ...any) {}
func (NopLogger) Info(msg string, args ...any)  {}
func (NopLogger) Warn(msg string, args ...any)  {}
func (NopLogger) Error(msg string, args ...any) {}

var _ StructuredLogger = NopLogger{}

// SlogAdapter adapts a slog.Logger to the StructuredLogger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }
func (a *SlogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *SlogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
func (a *SlogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }

var _ StructuredLogger = (*SlogAdapter)(nil)

// MaskCredential masks a credential string for safe logging. The key
// prefix (e.g. "pk-lf-") and the last four characters stay visible.
func MaskCredential(s string) string {
	const visibleSuffix = 4

	if s == "" {
		return ""
	}
	if len(s) <= visibleSuffix {
		return "****"
	}

	// Keep the prefix through the second hyphen, e.g. "pk-lf-".
	prefixEnd := 0
	hyphens := 0
	for i, c := range s {
		if c == '-' {
			hyphens++
			if hyphens == 2 {
				prefixEnd = i + 1
				break
			}
		}
	}

	suffix := s[len(s)-visibleSuffix:]
	maskLen := len(s) - prefixEnd - visibleSuffix
	if maskLen < 1 {
		return "****" + suffix
	}
	return s[:prefixEnd] + strings.Repeat("*", maskLen) + suffix
}
