// Package config loads application configuration from a config file,
// SNAPCOOK_* environment variables, and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Provider ProviderConfig
	Camera   CameraConfig
	Locale   string `mapstructure:"locale"`
}

// ProviderConfig selects and configures the LLM backing implementations.
// The Gemini key, when present, selects Gemini for both gateway operations;
// otherwise the OpenAI-compatible provider is used.
type ProviderConfig struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// OpenAIConfig configures the default OpenAI-compatible provider.
type OpenAIConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// GeminiConfig configures the alternate Gemini provider.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// CameraConfig configures the capture device.
type CameraConfig struct {
	Device  string `mapstructure:"device"`  // e.g. /dev/video0
	Quality int    `mapstructure:"quality"` // JPEG quality, 1-100
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("snapcook")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/snapcook")

	v.SetEnvPrefix("SNAPCOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("locale", "en")

	v.SetDefault("provider.openai.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("provider.openai.model", "gpt-4o-mini")
	v.SetDefault("provider.openai.api_key", "")

	v.SetDefault("provider.gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("provider.gemini.model", "gemini-2.0-flash")
	v.SetDefault("provider.gemini.api_key", "")

	v.SetDefault("camera.device", "/dev/video0")
	v.SetDefault("camera.quality", 80)
}

func validate(cfg *Config) error {
	if cfg.Provider.OpenAI.APIKey == "" && cfg.Provider.Gemini.APIKey == "" {
		return fmt.Errorf("a provider API key is required (set SNAPCOOK_PROVIDER_OPENAI_API_KEY or SNAPCOOK_PROVIDER_GEMINI_API_KEY)")
	}

	if q := cfg.Camera.Quality; q < 1 || q > 100 {
		return fmt.Errorf("camera quality must be 1-100, got: %d", q)
	}

	return nil
}
