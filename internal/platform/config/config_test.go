package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("Generation.Temperature = %v, want 0.7", cfg.Generation.Temperature)
	}
	if cfg.Generation.QuizQuestions != 7 {
		t.Errorf("Generation.QuizQuestions = %d, want 7", cfg.Generation.QuizQuestions)
	}
	if cfg.Library.Dir != "./library" {
		t.Errorf("Library.Dir = %q, want ./library", cfg.Library.Dir)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COURSEGEN_SERVER_PORT", "9090")
	t.Setenv("COURSEGEN_GENERATION_TEMPERATURE", "0.3")
	t.Setenv("COURSEGEN_AI_GROQ_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Generation.Temperature != 0.3 {
		t.Errorf("Generation.Temperature = %v, want 0.3", cfg.Generation.Temperature)
	}
	if !cfg.HasAIProvider() {
		t.Error("HasAIProvider() = false with Groq key set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"no provider", func(c *Config) {}, true},
		{"groq key", func(c *Config) { c.AI.Groq.APIKey = "k" }, false},
		{"gemini key", func(c *Config) { c.AI.Gemini.APIKey = "k" }, false},
		{"bad temperature", func(c *Config) {
			c.AI.Groq.APIKey = "k"
			c.Generation.Temperature = 1.5
		}, true},
		{"empty library dir", func(c *Config) {
			c.AI.Groq.APIKey = "k"
			c.Library.Dir = ""
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasSearch(t *testing.T) {
	cfg := &Config{}
	if cfg.HasSearch() {
		t.Error("HasSearch() = true without keys")
	}
	cfg.Search.APIKey = "k"
	if cfg.HasSearch() {
		t.Error("HasSearch() = true without engine ID")
	}
	if !cfg.HasVideoSearch() {
		t.Error("HasVideoSearch() = false with API key set")
	}
	cfg.Search.EngineID = "cx"
	if !cfg.HasSearch() {
		t.Error("HasSearch() = false with both keys set")
	}
}
