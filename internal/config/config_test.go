package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want 30m", cfg.Session.TTL)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Redis.Addr = %q, want empty", cfg.Redis.Addr)
	}
	if cfg.TTS.Backend != BackendOpenAI {
		t.Errorf("TTS.Backend = %q, want openai", cfg.TTS.Backend)
	}
	if cfg.TTS.Voice != "nova" || cfg.TTS.Speed != 1.0 {
		t.Errorf("voice = %q speed = %v", cfg.TTS.Voice, cfg.TTS.Speed)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("CORS.AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("TTS_BACKEND", "ElevenLabs")
	t.Setenv("ELEVENLABS_API_KEY", "xi")
	t.Setenv("TTS_SPEED", "1.25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Session.TTL != 5*time.Minute {
		t.Errorf("TTL = %v", cfg.Session.TTL)
	}
	if cfg.TTS.Backend != BackendElevenLabs {
		t.Errorf("Backend = %q", cfg.TTS.Backend)
	}
	if cfg.TTS.Speed != 1.25 {
		t.Errorf("Speed = %v", cfg.TTS.Speed)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SERVER_PORT", "eighty"},
		{"REDIS_DB", "x"},
		{"SESSION_TTL", "forever"},
		{"TTS_SPEED", "fast"},
		{"TTS_LOCAL_SAMPLE_RATE", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q succeeded, want error", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Session: SessionConfig{TTL: time.Minute},
			TTS:     TTSConfig{Backend: BackendStub, Speed: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"stub", func(c *Config) {}, false},
		{"openai without key", func(c *Config) { c.TTS.Backend = BackendOpenAI }, true},
		{"openai with key", func(c *Config) { c.TTS.Backend = BackendOpenAI; c.TTS.OpenAIKey = "k" }, false},
		{"elevenlabs without key", func(c *Config) { c.TTS.Backend = BackendElevenLabs }, true},
		{"local without model", func(c *Config) { c.TTS.Backend = BackendLocal }, true},
		{"local with model", func(c *Config) { c.TTS.Backend = BackendLocal; c.TTS.LocalModel = "v.onnx" }, false},
		{"unknown backend", func(c *Config) { c.TTS.Backend = "gemini" }, true},
		{"speed too low", func(c *Config) { c.TTS.Speed = 0.1 }, true},
		{"speed too high", func(c *Config) { c.TTS.Speed = 5 }, true},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestVoiceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.yaml")
	doc := "backend: openai\nvoice: shimmer\nspeed: 0.9\nmodel: tts-1-hd\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	t.Setenv("TTS_VOICE_FILE", path)
	t.Setenv("TTS_VOICE", "alloy")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TTS.Voice != "shimmer" {
		t.Errorf("Voice = %q, want shimmer", cfg.TTS.Voice)
	}
	if cfg.TTS.Speed != 0.9 {
		t.Errorf("Speed = %v, want 0.9", cfg.TTS.Speed)
	}
	if cfg.TTS.OpenAIModel != "tts-1-hd" {
		t.Errorf("OpenAIModel = %q, want tts-1-hd", cfg.TTS.OpenAIModel)
	}
}

func TestVoiceFileModelFollowsBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.yaml")
	if err := os.WriteFile(path, []byte("backend: elevenlabs\nmodel: eleven_turbo_v2_5\n"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	t.Setenv("TTS_VOICE_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TTS.Backend != BackendElevenLabs {
		t.Errorf("Backend = %q", cfg.TTS.Backend)
	}
	if cfg.TTS.ElevenLabsModel != "eleven_turbo_v2_5" {
		t.Errorf("ElevenLabsModel = %q", cfg.TTS.ElevenLabsModel)
	}
	if cfg.TTS.OpenAIModel != "" {
		t.Errorf("OpenAIModel = %q, want untouched", cfg.TTS.OpenAIModel)
	}
}

func TestVoiceFileErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("TTS_VOICE_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		if _, err := Load(); err == nil {
			t.Error("expected error for missing profile")
		}
	})
	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "voice.yaml")
		os.WriteFile(path, []byte("speed: [fast"), 0o644)
		t.Setenv("TTS_VOICE_FILE", path)
		if _, err := Load(); err == nil {
			t.Error("expected error for malformed profile")
		}
	})
}
