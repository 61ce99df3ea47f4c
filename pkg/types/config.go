package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "usecase-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// GeneratorBackend identifies the text-generation backend.
type GeneratorBackend string

const (
	GeneratorOllama    GeneratorBackend = "ollama"
	GeneratorOpenAI    GeneratorBackend = "openai"
	GeneratorAnthropic GeneratorBackend = "anthropic"
)

// GenerationConfig holds settings for the use-case generation step.
type GenerationConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the generator: ollama, openai, or anthropic.
	Backend GeneratorBackend `json:"backend" yaml:"backend" mapstructure:"backend" validate:"oneof=ollama openai anthropic"`

	// Model is the model identifier passed to the backend (e.g. "llama3.2", "gpt-4o-mini").
	Model string `json:"model" yaml:"model" mapstructure:"model" validate:"required"`

	// BaseURL overrides the backend endpoint. Empty means the backend default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url" validate:"omitempty,url"`

	// APIKey authenticates against hosted backends. Filled from .secrets/ when empty.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// MaxTokens bounds the generated continuation (default 300).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens" validate:"gte=1"`

	// MaxRetries is the number of retry attempts for failed generation calls (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`

	// EchoPrompt prepends the prompt to the continuation before extraction, so the
	// primed "1. " line yields the first use case. When unset it is true for
	// ollama and false for chat backends.
	EchoPrompt bool `json:"echo_prompt" yaml:"echo_prompt" mapstructure:"echo_prompt"`
}

// ExtractConfig holds settings for turning generated text into use cases.
type ExtractConfig struct {
	// Limit is the maximum number of use cases kept, at most 3 (default 3).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit" validate:"gte=1,lte=3"`

	// SkipBlank drops numbered lines with no content instead of keeping them
	// as empty use cases.
	SkipBlank bool `json:"skip_blank" yaml:"skip_blank" mapstructure:"skip_blank"`
}

// HuggingFaceKind selects which Hugging Face catalog is searched.
type HuggingFaceKind string

const (
	HuggingFaceModels   HuggingFaceKind = "models"
	HuggingFaceDatasets HuggingFaceKind = "datasets"
)

// SearchConfig holds settings for the dataset search step.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults is the per-provider cap on returned records (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=1,lte=100"`

	// EnableHuggingFace controls whether the Hugging Face provider is used.
	EnableHuggingFace bool `json:"enable_huggingface" yaml:"enable_huggingface" mapstructure:"enable_huggingface"`

	// HuggingFaceKind selects the Hugging Face catalog: models or datasets.
	HuggingFaceKind HuggingFaceKind `json:"huggingface_kind" yaml:"huggingface_kind" mapstructure:"huggingface_kind" validate:"oneof=models datasets"`

	// HuggingFaceToken is an optional bearer token for higher rate limits.
	HuggingFaceToken string `json:"-" yaml:"-" mapstructure:"huggingface_token"`

	// EnableKaggle controls whether the Kaggle provider is used.
	EnableKaggle bool `json:"enable_kaggle" yaml:"enable_kaggle" mapstructure:"enable_kaggle"`

	// KaggleUsername and KaggleKey are sent as HTTP basic auth when both are set.
	KaggleUsername string `json:"-" yaml:"-" mapstructure:"kaggle_username"`
	KaggleKey      string `json:"-" yaml:"-" mapstructure:"kaggle_key"`

	// CacheTTL is how long provider results are reused for the same keyword. Zero disables caching.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl" validate:"gte=0"`

	// RequestsPerSecond limits calls per provider. Zero disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second" validate:"gte=0"`
}

// StoreConfig holds settings for the session store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir" validate:"required"`

	// Disabled turns off session persistence.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// LogConfig holds settings for the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// File, when set, receives JSON log lines rotated by size.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`

	// MaxSizeMB, MaxBackups and MaxAgeDays control file rotation.
	MaxSizeMB  int `json:"max_size_mb" yaml:"max_size_mb" mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days" mapstructure:"max_age_days" validate:"gte=0"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Extract    ExtractConfig    `json:"extract" yaml:"extract" mapstructure:"extract"`
	Search     SearchConfig     `json:"search" yaml:"search" mapstructure:"search"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
}
