// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the application configuration from viper (file,
// environment, flags) and .secrets/, then validates it.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/usecase-scout/internal/secrets"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// UserAgent is sent with every outbound HTTP request unless overridden.
const UserAgent = "usecase-scout/0.1"

// EnvPrefix prefixes environment overrides, e.g. USECASE_SCOUT_SEARCH_MAX_RESULTS.
const EnvPrefix = "USECASE_SCOUT"

// BindEnv makes v read dotted keys from prefixed, underscore-separated
// environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// echo_prompt has no registered default, so bind it explicitly.
	_ = v.BindEnv(echoPromptKey)
}

const echoPromptKey = "generation.echo_prompt"

// SetDefaults registers default values on v. Every key is registered, even
// empty ones, so environment variables reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generation.backend", string(types.GeneratorOllama))
	v.SetDefault("generation.model", "llama3.2")
	v.SetDefault("generation.max_tokens", 300)
	v.SetDefault("generation.max_retries", 2)
	v.SetDefault("generation.timeout", 2*time.Minute)
	v.SetDefault("generation.user_agent", UserAgent)
	v.SetDefault("generation.base_url", "")
	v.SetDefault("generation.api_key", "")

	v.SetDefault("extract.limit", 3)
	v.SetDefault("extract.skip_blank", false)

	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.enable_huggingface", true)
	v.SetDefault("search.huggingface_kind", string(types.HuggingFaceModels))
	v.SetDefault("search.enable_kaggle", true)
	v.SetDefault("search.cache_ttl", 15*time.Minute)
	v.SetDefault("search.requests_per_second", 2.0)
	v.SetDefault("search.timeout", 20*time.Second)
	v.SetDefault("search.user_agent", UserAgent)
	v.SetDefault("search.huggingface_token", "")
	v.SetDefault("search.kaggle_username", "")
	v.SetDefault("search.kaggle_key", "")

	v.SetDefault("store.data_dir", "data")
	v.SetDefault("store.disabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 0)
	v.SetDefault("log.max_backups", 0)
	v.SetDefault("log.max_age_days", 0)

	v.SetDefault("server.addr", ":8080")
}

// Load unmarshals v into an AppConfig, fills credentials from s where the
// configuration leaves them empty, and validates the result.
func Load(v *viper.Viper, s secrets.Secrets) (types.AppConfig, error) {
	SetDefaults(v)

	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("decoding configuration: %w", err)
	}

	if !v.IsSet(echoPromptKey) {
		cfg.Generation.EchoPrompt = echoPromptDefault(cfg.Generation.Backend)
	}
	applySecrets(&cfg, s)

	if err := Validate(cfg); err != nil {
		return types.AppConfig{}, err
	}
	return cfg, nil
}

// echoPromptDefault reports whether backend continues text rather than
// answering a chat turn. Only completion-style output needs the primed
// "1. " prepended; a chat reply may open with a preamble line.
func echoPromptDefault(backend types.GeneratorBackend) bool {
	return backend == types.GeneratorOllama || backend == ""
}

func applySecrets(cfg *types.AppConfig, s secrets.Secrets) {
	switch cfg.Generation.Backend {
	case types.GeneratorOpenAI:
		cfg.Generation.APIKey = s.Or(cfg.Generation.APIKey, secrets.OpenAIAPIKey)
	case types.GeneratorAnthropic:
		cfg.Generation.APIKey = s.Or(cfg.Generation.APIKey, secrets.AnthropicAPIKey)
	}
	cfg.Search.HuggingFaceToken = s.Or(cfg.Search.HuggingFaceToken, secrets.HuggingFaceToken)
	cfg.Search.KaggleUsername = s.Or(cfg.Search.KaggleUsername, secrets.KaggleUsername)
	cfg.Search.KaggleKey = s.Or(cfg.Search.KaggleKey, secrets.KaggleKey)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its struct tags and cross-field rules.
func Validate(cfg types.AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("validating configuration: %w", err)
	}

	if cfg.Generation.Backend != types.GeneratorOllama && cfg.Generation.APIKey == "" {
		return fmt.Errorf("invalid configuration: generation backend %q requires an API key (config generation.api_key or .secrets/)", cfg.Generation.Backend)
	}
	if !cfg.Search.EnableHuggingFace && !cfg.Search.EnableKaggle {
		return fmt.Errorf("invalid configuration: at least one dataset provider must be enabled")
	}
	return nil
}
