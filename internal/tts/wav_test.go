package tts

import (
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	pcm := make([]byte, 3200) // 100 ms at 16 kHz mono PCM16
	wav := EncodeWAV(pcm, PCM16kMono)

	if len(wav) != wavHeaderSize+len(pcm) {
		t.Fatalf("len = %d, want %d", len(wav), wavHeaderSize+len(pcm))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE magic: %q %q", wav[0:4], wav[8:12])
	}
	if string(wav[12:16]) != "fmt " || string(wav[36:40]) != "data" {
		t.Fatalf("missing fmt/data chunk ids")
	}

	le := binary.LittleEndian
	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", le.Uint32(wav[4:8]), uint32(36 + len(pcm))},
		{"format", uint32(le.Uint16(wav[20:22])), 1},
		{"channels", uint32(le.Uint16(wav[22:24])), 1},
		{"sample rate", le.Uint32(wav[24:28]), 16000},
		{"byte rate", le.Uint32(wav[28:32]), 32000},
		{"block align", uint32(le.Uint16(wav[32:34])), 2},
		{"bits", uint32(le.Uint16(wav[34:36])), 16},
		{"data size", le.Uint32(wav[40:44]), uint32(len(pcm))},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
}

func TestEncodeWAVKeepsSamples(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	wav := EncodeWAV(pcm, PCM22kMono)
	for i, b := range pcm {
		if wav[wavHeaderSize+i] != b {
			t.Fatalf("sample byte %d = %#x, want %#x", i, wav[wavHeaderSize+i], b)
		}
	}
}
