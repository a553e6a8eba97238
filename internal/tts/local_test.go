package tts

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestPiperRequiresModel(t *testing.T) {
	l := NewPiperTTS(PiperConfig{})
	_, err := l.Synthesize(context.Background(), SynthesisRequest{Input: "hi"})
	if err == nil || !strings.Contains(err.Error(), "TTS_LOCAL_PIPER_MODEL") {
		t.Fatalf("err = %v, want missing model error", err)
	}
}

func TestPiperWrapsPiperOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for piper")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "piper")
	// Echoes stdin back as "PCM" so the test can check the wrapping.
	script := "#!/bin/sh\ncat\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake piper: %v", err)
	}

	l := NewPiperTTS(PiperConfig{BinPath: bin, ModelPath: "voice.onnx"})
	res, err := l.Synthesize(context.Background(), SynthesisRequest{Input: "abcd"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(res.Audio[:4]) != "RIFF" {
		t.Fatalf("audio is not WAV")
	}
	if got := string(res.Audio[wavHeaderSize:]); got != "abcd" {
		t.Errorf("pcm = %q, want %q", got, "abcd")
	}
}

func TestPiperPiperFailure(t *testing.T) {
	l := NewPiperTTS(PiperConfig{BinPath: filepath.Join(t.TempDir(), "missing"), ModelPath: "voice.onnx"})
	if _, err := l.Synthesize(context.Background(), SynthesisRequest{Input: "hi"}); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestPiperArgs(t *testing.T) {
	p := NewPiperTTS(PiperConfig{ModelPath: "v.onnx"})
	tests := []struct {
		name string
		req  SynthesisRequest
		want string
	}{
		{"defaults", SynthesisRequest{Voice: "nova", Speed: 1}, "--model v.onnx --output-raw"},
		{"speaker", SynthesisRequest{Voice: "3", Speed: 1}, "--model v.onnx --output-raw --speaker 3"},
		{"faster", SynthesisRequest{Speed: 2}, "--model v.onnx --output-raw --length_scale 0.500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(p.args(tt.req), " "); got != tt.want {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}
