package langfuse

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Environment variable names for configuration.
const (
	// EnvPublicKey is the environment variable for the Langfuse public key.
	EnvPublicKey = "LANGFUSE_PUBLIC_KEY"
	// EnvSecretKey is the environment variable for the Langfuse secret key.
	EnvSecretKey = "LANGFUSE_SECRET_KEY"
	// EnvBaseURL is the environment variable for the Langfuse API base URL.
	EnvBaseURL = "LANGFUSE_BASE_URL"
	// EnvHost is an alias for EnvBaseURL (for compatibility).
	EnvHost = "LANGFUSE_HOST"
	// EnvDebug is the environment variable to enable debug mode.
	EnvDebug = "LANGFUSE_DEBUG"
)

// Default configuration values.
const (
	// DefaultBaseURL is the managed Langfuse endpoint used when no base
	// URL is configured.
	DefaultBaseURL = "https://us.cloud.langfuse.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default maximum number of retry attempts.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default initial delay between retries.
	DefaultRetryDelay = 1 * time.Second

	// DefaultBatchSize is the default maximum number of events per batch.
	DefaultBatchSize = 100

	// DefaultFlushInterval is the default interval for flushing pending
	// events.
	DefaultFlushInterval = 5 * time.Second

	// DefaultBatchQueueSize is the default size of the background batch
	// queue.
	DefaultBatchQueueSize = 100

	// DefaultShutdownTimeout is the default graceful shutdown timeout.
	// Must be >= DefaultTimeout so pending requests can complete.
	DefaultShutdownTimeout = 30 * time.Second

	// MinKeyLength is the minimum length for API keys.
	MinKeyLength = 10

	// PublicKeyPrefix is the expected prefix for public keys.
	PublicKeyPrefix = "pk-lf-"

	// SecretKeyPrefix is the expected prefix for secret keys.
	SecretKeyPrefix = "sk-lf-"
)

// Config holds the configuration for the Langfuse client.
type Config struct {
	// PublicKey is the Langfuse public key (required).
	PublicKey string

	// SecretKey is the Langfuse secret key (required).
	SecretKey string

	// BaseURL is the base URL for the Langfuse API.
	// Defaults to DefaultBaseURL if not set.
	BaseURL string

	// HTTPClient is the HTTP client to use for requests.
	// If not set, a default client with sensible timeouts is used.
	HTTPClient *http.Client

	// Timeout is the request timeout. Defaults to 30 seconds.
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed
	// requests. Defaults to 3.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts.
	// Defaults to 1 second.
	RetryDelay time.Duration

	// BatchSize is the maximum number of events per ingestion batch.
	// Defaults to 100.
	BatchSize int

	// FlushInterval is the interval at which pending events are flushed.
	// Defaults to 5 seconds.
	FlushInterval time.Duration

	// BatchQueueSize is the size of the background batch queue.
	// Defaults to 100.
	BatchQueueSize int

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Defaults to 30 seconds.
	ShutdownTimeout time.Duration

	// Environment is attached to every trace and score when set.
	Environment string

	// Debug enables debug logging via the configured Logger.
	Debug bool

	// Logger receives client log output. Defaults to NopLogger.
	Logger StructuredLogger
}

// String returns a string representation of the config with masked
// credentials, safe for logs.
func (c *Config) String() string {
	return fmt.Sprintf("Config{PublicKey: %q, SecretKey: %q, BaseURL: %q, BatchSize: %d, FlushInterval: %v}",
		MaskCredential(c.PublicKey),
		MaskCredential(c.SecretKey),
		c.BaseURL,
		c.BatchSize,
		c.FlushInterval,
	)
}

// applyDefaults sets default values for unset configuration options.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = DefaultFlushInterval
	}
	if c.BatchQueueSize == 0 {
		c.BatchQueueSize = DefaultBatchQueueSize
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Logger == nil {
		c.Logger = NopLogger{}
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
}

// validate checks that the configuration is valid.
func (c *Config) validate() error {
	if c.PublicKey == "" {
		return ErrMissingPublicKey
	}
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if len(c.PublicKey) < MinKeyLength {
		return fmt.Errorf("langfuse: public key is too short (minimum %d characters)", MinKeyLength)
	}
	if len(c.SecretKey) < MinKeyLength {
		return fmt.Errorf("langfuse: secret key is too short (minimum %d characters)", MinKeyLength)
	}
	if !strings.HasPrefix(c.PublicKey, PublicKeyPrefix) {
		return fmt.Errorf("langfuse: public key should start with %q", PublicKeyPrefix)
	}
	if !strings.HasPrefix(c.SecretKey, SecretKeyPrefix) {
		return fmt.Errorf("langfuse: secret key should start with %q", SecretKeyPrefix)
	}

	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("langfuse: invalid base URL: %w", err)
	}

	if c.BatchSize < 1 {
		return fmt.Errorf("langfuse: batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.BatchQueueSize < 1 {
		return fmt.Errorf("langfuse: batch queue size must be at least 1, got %d", c.BatchQueueSize)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("langfuse: max retries cannot be negative, got %d", c.MaxRetries)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("langfuse: timeout cannot be negative")
	}
	if c.ShutdownTimeout < c.Timeout {
		return fmt.Errorf("langfuse: shutdown timeout (%v) should be >= request timeout (%v) to allow pending requests to complete",
			c.ShutdownTimeout, c.Timeout)
	}

	return nil
}
