package tts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilbhutani/bharativoice/internal/speech"
)

// Capability exposes a Provider as the speech controller's synthesis
// capability: text in, playable media reference out.
type Capability struct {
	provider Provider
	voice    string
	speed    float64
	log      *slog.Logger
	now      func() time.Time
}

var _ speech.Synthesizer = (*Capability)(nil)

// NewCapability binds provider to a voice and speed.
func NewCapability(provider Provider, voice string, speed float64, logger *slog.Logger) *Capability {
	if logger == nil {
		logger = slog.Default()
	}
	return &Capability{
		provider: provider,
		voice:    voice,
		speed:    speed,
		log:      logger.With("component", "tts", "provider", provider.Name()),
		now:      time.Now,
	}
}

// Synthesize calls the provider once and returns the audio as a data URI.
func (c *Capability) Synthesize(ctx context.Context, text string) (*speech.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("tts: text is required")
	}

	start := c.now()
	out, err := c.provider.Synthesize(ctx, SynthesisRequest{
		Input: text,
		Voice: c.voice,
		Speed: c.speed,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.provider.Name(), err)
	}
	if out == nil || len(out.Audio) == 0 {
		return nil, fmt.Errorf("%s: no audio returned", c.provider.Name())
	}

	contentType := out.ContentType
	if contentType == "" {
		contentType = "audio/wav"
	}

	c.log.Debug("synthesis completed",
		"text_length", len(text),
		"bytes", len(out.Audio),
		"duration_ms", c.now().Sub(start).Milliseconds(),
	)

	return &speech.Result{
		ID:          uuid.NewString(),
		Media:       speech.EncodeMedia(contentType, out.Audio),
		ContentType: contentType,
		CreatedAt:   c.now().UTC(),
	}, nil
}
