package model

import "time"

// Config holds the full runtime configuration
type Config struct {
	Intake      IntakeConfig      `yaml:"intake" mapstructure:"intake"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	History     HistoryConfig     `yaml:"history" mapstructure:"history"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// IntakeConfig controls document acquisition
type IntakeConfig struct {
	// Extensions is the closed set of accepted document extensions
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`
	// MaxFileBytes caps the size of a single document
	MaxFileBytes int64 `yaml:"max_file_bytes" mapstructure:"max_file_bytes"`
	// Debounce coalesces rapid filesystem events in watch mode
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// CacheConfig controls the parsed-text cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls worker counts
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig throttles document intake
type RateLimitConfig struct {
	DocsPerSecond float64 `yaml:"docs_per_second" mapstructure:"docs_per_second"`
	Burst         int     `yaml:"burst" mapstructure:"burst"`
}

// HistoryConfig controls the routing-history store
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr              string  `yaml:"addr" mapstructure:"addr"`
	MaxUploadBytes    int64   `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
}

// LLMConfig configures the optional claim summarizer
type LLMConfig struct {
	// Provider is "openai", "ollama", or "" (disabled)
	Provider  string        `yaml:"provider" mapstructure:"provider"`
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"-" mapstructure:"-"`
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Intake: IntakeConfig{
			Extensions:   []string{".pdf", ".txt"},
			MaxFileBytes: 20_000_000,
			Debounce:     500 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimit: RateLimitConfig{
			DocsPerSecond: 20,
			Burst:         5,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "",
		},
		Server: ServerConfig{
			Addr:              ":8080",
			MaxUploadBytes:    20_000_000,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Output: OutputConfig{
			Verbose: false,
			Pretty:  true,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			MaxTokens: 1000,
			Timeout:   30 * time.Second,
		},
	}
}
