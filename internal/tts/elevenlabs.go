package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// ElevenLabsBaseURL is the ElevenLabs API base URL.
	ElevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	// DefaultElevenLabsVoiceID is "Rachel", a calm female narration voice.
	DefaultElevenLabsVoiceID = "21m00Tcm4TlvDq8ikWAM"
	DefaultElevenLabsModel   = "eleven_multilingual_v2"
)

// ElevenLabsConfig holds configuration for the ElevenLabs backend.
type ElevenLabsConfig struct {
	APIKey  string
	VoiceID string
	Model   string
	BaseURL string
}

// ElevenLabsTTS synthesizes speech with the ElevenLabs streaming endpoint.
type ElevenLabsTTS struct {
	cfg        ElevenLabsConfig
	httpClient *http.Client
}

// NewElevenLabsTTS creates an ElevenLabsTTS with defaults applied.
func NewElevenLabsTTS(cfg ElevenLabsConfig) *ElevenLabsTTS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ElevenLabsBaseURL
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultElevenLabsVoiceID
	}
	if cfg.Model == "" {
		cfg.Model = DefaultElevenLabsModel
	}
	return &ElevenLabsTTS{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *ElevenLabsTTS) Name() string { return "elevenlabs" }

type elevenLabsVoiceSettings struct {
	Speed float64 `json:"speed,omitempty"`
}

type elevenLabsRequest struct {
	Text          string                   `json:"text"`
	ModelID       string                   `json:"model_id,omitempty"`
	VoiceSettings *elevenLabsVoiceSettings `json:"voice_settings,omitempty"`
}

// Synthesize requests 16 kHz PCM and wraps it into WAV.
// The voice comes from configuration; req.Voice names OpenAI voices and is ignored.
func (e *ElevenLabsTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if req.Input == "" {
		return nil, fmt.Errorf("elevenlabs: text is required")
	}

	payload := elevenLabsRequest{Text: req.Input, ModelID: e.cfg.Model}
	if req.Speed > 0 && req.Speed != 1 {
		payload.VoiceSettings = &elevenLabsVoiceSettings{Speed: req.Speed}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s/stream?output_format=pcm_16000", e.cfg.BaseURL, e.cfg.VoiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", e.cfg.APIKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("elevenlabs: API error (status %d): %s", resp.StatusCode, string(errBody))
	}

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: read audio: %w", err)
	}

	return &SynthesisResult{
		Audio:       EncodeWAV(pcm, PCM16kMono),
		ContentType: "audio/wav",
	}, nil
}
