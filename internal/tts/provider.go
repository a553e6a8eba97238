// Package tts adapts text-to-speech backends into the playable media
// references the speech controller stores.
package tts

import "context"

// SynthesisRequest is one call to a backend. Voice is backend-specific: an
// OpenAI voice name, an ElevenLabs voice id or a Piper speaker number. Zero
// Speed means the backend default.
type SynthesisRequest struct {
	Input string
	Voice string
	Speed float64
}

// SynthesisResult holds the generated audio and its content type.
type SynthesisResult struct {
	Audio       []byte
	ContentType string // always "audio/wav": PCM backends are wrapped before returning
}

// Provider is the interface for text-to-speech backends.
type Provider interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
	Name() string
}
