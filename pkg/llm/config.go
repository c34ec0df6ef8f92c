package llm

import (
	"time"

	"frameworks/lookout/pkg/config"
)

// Config holds connection settings for the remote model endpoint.
type Config struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// LoadConfig reads OpenRouter settings from the environment. The API key
// may legitimately be empty; callers decide how to degrade without it.
func LoadConfig() Config {
	return Config{
		APIKey:  config.GetEnv("OPENROUTER_API_KEY", ""),
		APIURL:  config.GetEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:   config.GetEnv("OPENROUTER_MODEL", "google/gemini-2.5-flash"),
		Timeout: config.GetEnvSeconds("LLM_TIMEOUT_SECONDS", 60*time.Second),
	}
}
