package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Session SessionConfig
	Redis   RedisConfig
	CORS    CORSConfig
	TTS     TTSConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LogConfig struct {
	Level string
}

type SessionConfig struct {
	TTL time.Duration
}

type RedisConfig struct {
	Addr     string // empty: sessions stay in memory
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TTSConfig struct {
	Backend string // "openai", "elevenlabs", "local" or "stub"

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	ElevenLabsKey     string
	ElevenLabsVoiceID string
	ElevenLabsModel   string
	ElevenLabsBaseURL string

	LocalBinPath    string // default: "piper"
	LocalModel      string // required when backend=local
	LocalSampleRate int

	Voice     string
	Speed     float64
	VoiceFile string // optional YAML voice profile
}

const (
	BackendOpenAI     = "openai"
	BackendElevenLabs = "elevenlabs"
	BackendLocal      = "local"
	BackendStub       = "stub"
)

func Load() (*Config, error) {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	ttl, err := getEnvDuration("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	sampleRate, err := getEnvInt("TTS_LOCAL_SAMPLE_RATE", 22050)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_LOCAL_SAMPLE_RATE: %w", err)
	}

	speed, err := getEnvFloat("TTS_SPEED", 1.0)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_SPEED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			TTL: ttl,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		TTS: TTSConfig{
			Backend:           strings.ToLower(getEnv("TTS_BACKEND", BackendOpenAI)),
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:     getEnv("TTS_OPENAI_BASE_URL", ""),
			OpenAIModel:       getEnv("TTS_OPENAI_MODEL", ""),
			ElevenLabsKey:     getEnv("ELEVENLABS_API_KEY", ""),
			ElevenLabsVoiceID: getEnv("ELEVENLABS_VOICE_ID", ""),
			ElevenLabsModel:   getEnv("ELEVENLABS_MODEL", ""),
			ElevenLabsBaseURL: getEnv("ELEVENLABS_BASE_URL", ""),
			LocalBinPath:      getEnv("TTS_LOCAL_PIPER_BIN", "piper"),
			LocalModel:        getEnv("TTS_LOCAL_PIPER_MODEL", ""),
			LocalSampleRate:   sampleRate,
			Voice:             getEnv("TTS_VOICE", "nova"),
			Speed:             speed,
			VoiceFile:         getEnv("TTS_VOICE_FILE", ""),
		},
	}

	if cfg.TTS.VoiceFile != "" {
		if err := cfg.TTS.applyVoiceFile(cfg.TTS.VoiceFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	switch c.TTS.Backend {
	case BackendOpenAI:
		if c.TTS.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case BackendElevenLabs:
		if c.TTS.ElevenLabsKey == "" {
			missing = append(missing, "ELEVENLABS_API_KEY")
		}
	case BackendLocal:
		if c.TTS.LocalModel == "" {
			missing = append(missing, "TTS_LOCAL_PIPER_MODEL")
		}
	case BackendStub:
	default:
		return fmt.Errorf("unknown TTS_BACKEND %q", c.TTS.Backend)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if c.TTS.Speed < 0.25 || c.TTS.Speed > 4.0 {
		return fmt.Errorf("TTS_SPEED must be between 0.25 and 4.0, got %g", c.TTS.Speed)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
