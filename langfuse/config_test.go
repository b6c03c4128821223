package langfuse

import (
	"strings"
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		check    func(t *testing.T, c *Config)
	}{
		{
			name:   "empty config gets defaults",
			config: Config{},
			check: func(t *testing.T, c *Config) {
				if c.BaseURL != DefaultBaseURL {
					t.Errorf("BaseURL = %v, want %v", c.BaseURL, DefaultBaseURL)
				}
				if c.Timeout != DefaultTimeout {
					t.Errorf("Timeout = %v, want %v", c.Timeout, DefaultTimeout)
				}
				if c.MaxRetries != DefaultMaxRetries {
					t.Errorf("MaxRetries = %v, want %v", c.MaxRetries, DefaultMaxRetries)
				}
				if c.BatchSize != DefaultBatchSize {
					t.Errorf("BatchSize = %v, want %v", c.BatchSize, DefaultBatchSize)
				}
				if c.FlushInterval != DefaultFlushInterval {
					t.Errorf("FlushInterval = %v, want %v", c.FlushInterval, DefaultFlushInterval)
				}
				if c.ShutdownTimeout != DefaultShutdownTimeout {
					t.Errorf("ShutdownTimeout = %v, want %v", c.ShutdownTimeout, DefaultShutdownTimeout)
				}
				if c.Logger == nil {
					t.Error("Logger should default to NopLogger")
				}
				if c.HTTPClient == nil {
					t.Error("HTTPClient should be set")
				}
			},
		},
		{
			name: "custom values are preserved",
			config: Config{
				BaseURL:       "https://custom.example.com",
				Timeout:       10 * time.Second,
				BatchSize:     25,
				FlushInterval: time.Second,
			},
			check: func(t *testing.T, c *Config) {
				if c.BaseURL != "https://custom.example.com" {
					t.Errorf("BaseURL = %v, want custom URL", c.BaseURL)
				}
				if c.Timeout != 10*time.Second {
					t.Errorf("Timeout = %v, want 10s", c.Timeout)
				}
				if c.BatchSize != 25 {
					t.Errorf("BatchSize = %v, want 25", c.BatchSize)
				}
				if c.FlushInterval != time.Second {
					t.Errorf("FlushInterval = %v, want 1s", c.FlushInterval)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.applyDefaults()
			tt.check(t, &tt.config)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		c := Config{
			PublicKey: "pk-lf-valid-key",
			SecretKey: "sk-lf-valid-key",
		}
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing public key",
			modify:  func(c *Config) { c.PublicKey = "" },
			wantErr: true,
		},
		{
			name:    "missing secret key",
			modify:  func(c *Config) { c.SecretKey = "" },
			wantErr: true,
		},
		{
			name:    "public key too short",
			modify:  func(c *Config) { c.PublicKey = "pk-lf-x" },
			wantErr: true,
		},
		{
			name:    "public key wrong prefix",
			modify:  func(c *Config) { c.PublicKey = "xx-lf-valid-key" },
			wantErr: true,
		},
		{
			name:    "secret key wrong prefix",
			modify:  func(c *Config) { c.SecretKey = "xx-lf-valid-key" },
			wantErr: true,
		},
		{
			name:    "zero batch size",
			modify:  func(c *Config) { c.BatchSize = -1 },
			wantErr: true,
		},
		{
			name:    "negative max retries",
			modify:  func(c *Config) { c.MaxRetries = -1 },
			wantErr: true,
		},
		{
			name:    "shutdown timeout shorter than request timeout",
			modify:  func(c *Config) { c.ShutdownTimeout = time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			err := c.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigStringMasksCredentials(t *testing.T) {
	c := Config{
		PublicKey: "pk-lf-1234567890abcdef",
		SecretKey: "sk-lf-1234567890abcdef",
		BaseURL:   "https://example.com",
	}
	s := c.String()

	if strings.Contains(s, "1234567890ab") {
		t.Errorf("Config.String() leaked credential: %s", s)
	}
	if !strings.Contains(s, "pk-lf-") {
		t.Errorf("Config.String() should keep key prefix visible: %s", s)
	}
}

func TestMaskCredential(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "very short value",
			input: "abc",
			want:  "****",
		},
		{
			name:  "public key keeps prefix and suffix",
			input: "pk-lf-1234567890abcdef",
			want:  "pk-lf-************cdef",
		},
		{
			name:  "no prefix hyphens",
			input: "plainsecretvalue",
			want:  "************alue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskCredential(tt.input); got != tt.want {
				t.Errorf("MaskCredential(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
