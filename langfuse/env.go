package langfuse

import (
	"fmt"
	"os"
)

// NewFromEnv creates a new client using environment variables for
// configuration. It reads LANGFUSE_PUBLIC_KEY, LANGFUSE_SECRET_KEY, and
// optionally LANGFUSE_BASE_URL (or LANGFUSE_HOST) and LANGFUSE_DEBUG.
//
// Example:
//
//	client, err := langfuse.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown(context.Background())
func NewFromEnv(opts ...ConfigOption) (*Client, error) {
	publicKey := os.Getenv(EnvPublicKey)
	secretKey := os.Getenv(EnvSecretKey)

	if publicKey == "" {
		return nil, fmt.Errorf("langfuse: %s environment variable is required", EnvPublicKey)
	}
	if secretKey == "" {
		return nil, fmt.Errorf("langfuse: %s environment variable is required", EnvSecretKey)
	}

	// Env var options go first so explicit options can override them.
	envOpts := make([]ConfigOption, 0, 2)

	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		envOpts = append(envOpts, WithBaseURL(baseURL))
	} else if host := os.Getenv(EnvHost); host != "" {
		envOpts = append(envOpts, WithBaseURL(host))
	}

	if debug := os.Getenv(EnvDebug); debug == "true" || debug == "1" {
		envOpts = append(envOpts, WithDebug(true))
	}

	allOpts := append(envOpts, opts...)
	return New(publicKey, secretKey, allOpts...)
}
