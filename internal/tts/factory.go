package tts

import (
	"fmt"
	"log/slog"

	"github.com/nikhilbhutani/bharativoice/internal/config"
)

// NewProvider builds the backend selected by cfg.Backend.
func NewProvider(cfg config.TTSConfig, logger *slog.Logger) (Provider, error) {
	switch cfg.Backend {
	case config.BackendOpenAI, "":
		return NewOpenAITTS(OpenAITTSConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}), nil
	case config.BackendElevenLabs:
		return NewElevenLabsTTS(ElevenLabsConfig{
			APIKey:  cfg.ElevenLabsKey,
			VoiceID: cfg.ElevenLabsVoiceID,
			Model:   cfg.ElevenLabsModel,
			BaseURL: cfg.ElevenLabsBaseURL,
		}), nil
	case config.BackendLocal:
		return NewPiperTTS(PiperConfig{
			BinPath:    cfg.LocalBinPath,
			ModelPath:  cfg.LocalModel,
			SampleRate: cfg.LocalSampleRate,
		}), nil
	case config.BackendStub:
		return NewStubTTS(logger), nil
	default:
		return nil, fmt.Errorf("tts: unknown backend %q", cfg.Backend)
	}
}
