// Package config loads application configuration from environment variables.
// All variables use the COURSEGEN_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	AI         AIConfig
	Search     SearchConfig
	Generation GenerationConfig
	Library    LibraryConfig
	PromptDir  string
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL settings for the library record index.
// An empty URL keeps the index in memory.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis settings for the enrichment result cache. An
// empty URL disables caching.
type CacheConfig struct {
	URL        string
	TTLMinutes int
}

// AIConfig holds configuration for the generation providers.
type AIConfig struct {
	Groq   GroqConfig
	Gemini GeminiConfig
}

// GroqConfig holds Groq provider settings (OpenAI-compatible).
type GroqConfig struct {
	APIKey string
	Model  string
}

// GeminiConfig holds Google Gemini provider settings.
type GeminiConfig struct {
	APIKey string
}

// SearchConfig holds Google Custom Search and YouTube Data API settings.
// Empty keys disable the corresponding enrichment.
type SearchConfig struct {
	APIKey   string // Google API key, shared by Custom Search and YouTube
	EngineID string // Custom Search Engine ID
}

// GenerationConfig holds default generation parameters.
type GenerationConfig struct {
	Temperature    float64
	MaxTokens      int
	QuizQuestions  int
	VideosPerTopic int
	SearchResults  int
}

// LibraryConfig holds persistence settings for generated artifacts.
type LibraryConfig struct {
	Dir string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with COURSEGEN_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("COURSEGEN_SERVER_PORT", 8080),
			Host: envStr("COURSEGEN_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("COURSEGEN_DATABASE_URL", ""),
			MaxConns: envInt("COURSEGEN_DATABASE_MAX_CONNS", 10),
			MinConns: envInt("COURSEGEN_DATABASE_MIN_CONNS", 2),
		},
		Cache: CacheConfig{
			URL:        envStr("COURSEGEN_CACHE_URL", ""),
			TTLMinutes: envInt("COURSEGEN_CACHE_TTL_MINUTES", 60),
		},
		AI: AIConfig{
			Groq: GroqConfig{
				APIKey: envStr("COURSEGEN_AI_GROQ_API_KEY", ""),
				Model:  envStr("COURSEGEN_AI_GROQ_MODEL", ""),
			},
			Gemini: GeminiConfig{
				APIKey: envStr("COURSEGEN_AI_GEMINI_API_KEY", ""),
			},
		},
		Search: SearchConfig{
			APIKey:   envStr("COURSEGEN_SEARCH_API_KEY", ""),
			EngineID: envStr("COURSEGEN_SEARCH_ENGINE_ID", ""),
		},
		Generation: GenerationConfig{
			Temperature:    envFloat("COURSEGEN_GENERATION_TEMPERATURE", 0.7),
			MaxTokens:      envInt("COURSEGEN_GENERATION_MAX_TOKENS", 8000),
			QuizQuestions:  envInt("COURSEGEN_GENERATION_QUIZ_QUESTIONS", 7),
			VideosPerTopic: envInt("COURSEGEN_GENERATION_VIDEOS_PER_TOPIC", 2),
			SearchResults:  envInt("COURSEGEN_GENERATION_SEARCH_RESULTS", 3),
		},
		Library: LibraryConfig{
			Dir: envStr("COURSEGEN_LIBRARY_DIR", "./library"),
		},
		PromptDir: envStr("COURSEGEN_PROMPT_DIR", ""),
		Log: LogConfig{
			Level:  envStr("COURSEGEN_LOG_LEVEL", "info"),
			Format: envStr("COURSEGEN_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if !c.HasAIProvider() {
		return fmt.Errorf("at least one AI provider must be configured")
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 1 {
		return fmt.Errorf("COURSEGEN_GENERATION_TEMPERATURE must be in [0,1], got %v", c.Generation.Temperature)
	}
	if c.Library.Dir == "" {
		return fmt.Errorf("COURSEGEN_LIBRARY_DIR must not be empty")
	}
	return nil
}

// HasAIProvider returns true if at least one generation provider is
// configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.Groq.APIKey != "" || c.AI.Gemini.APIKey != ""
}

// HasSearch returns true if web-search enrichment is configured.
func (c *Config) HasSearch() bool {
	return c.Search.APIKey != "" && c.Search.EngineID != ""
}

// HasVideoSearch returns true if video enrichment is configured.
func (c *Config) HasVideoSearch() bool {
	return c.Search.APIKey != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
