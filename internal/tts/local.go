package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// PiperConfig selects the Piper binary and voice model.
type PiperConfig struct {
	BinPath    string // default: "piper"
	ModelPath  string // .onnx voice model
	SampleRate int    // must match the model; default 22050
}

// PiperTTS runs the Piper binary once per request. Piper writes headerless
// PCM with --output-raw, which is wrapped into WAV here.
type PiperTTS struct {
	cfg PiperConfig
}

func NewPiperTTS(cfg PiperConfig) *PiperTTS {
	if cfg.BinPath == "" {
		cfg.BinPath = "piper"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = PCM22kMono.SampleRate
	}
	return &PiperTTS{cfg: cfg}
}

func (p *PiperTTS) Name() string { return "local-piper" }

// args builds the Piper command line. A numeric voice selects a speaker in
// multi-speaker models; speed maps onto Piper's inverse length scale.
func (p *PiperTTS) args(req SynthesisRequest) []string {
	args := []string{"--model", p.cfg.ModelPath, "--output-raw"}
	if _, err := strconv.Atoi(req.Voice); err == nil {
		args = append(args, "--speaker", req.Voice)
	}
	if req.Speed > 0 && req.Speed != 1 {
		args = append(args, "--length_scale", strconv.FormatFloat(1/req.Speed, 'f', 3, 64))
	}
	return args
}

func (p *PiperTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if p.cfg.ModelPath == "" {
		return nil, fmt.Errorf("piper: model path is required (set TTS_LOCAL_PIPER_MODEL)")
	}

	cmd := exec.CommandContext(ctx, p.cfg.BinPath, p.args(req)...)
	cmd.Stdin = strings.NewReader(req.Input)
	var pcm, stderr bytes.Buffer
	cmd.Stdout = &pcm
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("piper: run: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	if pcm.Len() == 0 {
		return nil, fmt.Errorf("piper: no audio produced (stderr: %s)", strings.TrimSpace(stderr.String()))
	}

	return &SynthesisResult{
		Audio:       EncodeWAV(pcm.Bytes(), PCMFormat{SampleRate: p.cfg.SampleRate, Channels: 1, BitsPerSample: 16}),
		ContentType: "audio/wav",
	}, nil
}
