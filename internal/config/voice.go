package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// voiceProfile is the YAML document referenced by TTS_VOICE_FILE:
//
//	backend: openai
//	voice: nova
//	speed: 1.0
//	model: tts-1-hd
type voiceProfile struct {
	Backend string   `yaml:"backend"`
	Voice   string   `yaml:"voice"`
	Speed   *float64 `yaml:"speed"`
	Model   string   `yaml:"model"`
}

// applyVoiceFile overrides voice settings with the non-empty fields of the
// profile at path. The model applies to whichever backend is selected.
func (t *TTSConfig) applyVoiceFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read voice profile: %w", err)
	}
	var p voiceProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode voice profile %s: %w", path, err)
	}

	if b := strings.ToLower(strings.TrimSpace(p.Backend)); b != "" {
		t.Backend = b
	}
	if v := strings.TrimSpace(p.Voice); v != "" {
		t.Voice = v
	}
	if p.Speed != nil {
		t.Speed = *p.Speed
	}
	if m := strings.TrimSpace(p.Model); m != "" {
		switch t.Backend {
		case BackendElevenLabs:
			t.ElevenLabsModel = m
		case BackendLocal:
			t.LocalModel = m
		default:
			t.OpenAIModel = m
		}
	}
	return nil
}
