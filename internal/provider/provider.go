package provider

import (
	"github.com/snapcook/snapcook/internal/config"
	"github.com/snapcook/snapcook/internal/domain"
	"github.com/snapcook/snapcook/internal/logger"
)

// FromConfig selects the backing implementation once at startup: presence
// of the Gemini credential selects Gemini for both gateway operations, its
// absence selects the OpenAI-compatible default. Selection is not per-call.
func FromConfig(cfg *config.Config, log *logger.Logger) domain.Provider {
	if cfg.Provider.Gemini.APIKey != "" {
		log.Info("provider: using gemini (model=%s)", cfg.Provider.Gemini.Model)
		return NewGemini(
			cfg.Provider.Gemini.BaseURL,
			cfg.Provider.Gemini.APIKey,
			cfg.Locale,
			log,
			WithGeminiModel(cfg.Provider.Gemini.Model),
		)
	}

	log.Info("provider: using openai (model=%s)", cfg.Provider.OpenAI.Model)
	return NewOpenAI(
		cfg.Provider.OpenAI.Endpoint,
		cfg.Provider.OpenAI.APIKey,
		cfg.Locale,
		log,
		WithModel(cfg.Provider.OpenAI.Model),
	)
}
