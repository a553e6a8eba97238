package tts

import (
	"context"
	"fmt"
	"log/slog"
)

// StubTTS produces deterministic silence. It is intended for development and
// CI where no speech backend is reachable.
type StubTTS struct {
	log *slog.Logger
}

// NewStubTTS returns a stub that generates silent audio proportional to the
// input text length.
func NewStubTTS(logger *slog.Logger) *StubTTS {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubTTS{log: logger.With("component", "tts-stub")}
}

func (s *StubTTS) Name() string { return "stub" }

// Synthesize returns len(text)*320 bytes of silent PCM (10 ms per byte of
// text at 16 kHz mono PCM16) wrapped into WAV.
func (s *StubTTS) Synthesize(_ context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if req.Input == "" {
		return nil, fmt.Errorf("stub: text is required")
	}
	pcm := make([]byte, len(req.Input)*320)
	s.log.Info("stub synthesis", "text_length", len(req.Input), "bytes", len(pcm))
	return &SynthesisResult{
		Audio:       EncodeWAV(pcm, PCM16kMono),
		ContentType: "audio/wav",
	}, nil
}
