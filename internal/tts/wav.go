package tts

import (
	"bytes"
	"encoding/binary"
)

const wavHeaderSize = 44

// PCMFormat describes raw little-endian signed PCM.
type PCMFormat struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

var (
	// PCM16kMono is what ElevenLabs returns for output_format=pcm_16000.
	PCM16kMono = PCMFormat{SampleRate: 16000, Channels: 1, BitsPerSample: 16}
	// PCM22kMono is Piper's --output-raw format for medium quality voices.
	PCM22kMono = PCMFormat{SampleRate: 22050, Channels: 1, BitsPerSample: 16}
)

// EncodeWAV prefixes pcm with a canonical RIFF/WAVE header.
func EncodeWAV(pcm []byte, f PCMFormat) []byte {
	blockAlign := f.Channels * f.BitsPerSample / 8
	byteRate := f.SampleRate * blockAlign

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16)) // fmt chunk size
	binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM
	binary.Write(buf, binary.LittleEndian, uint16(f.Channels))
	binary.Write(buf, binary.LittleEndian, uint32(f.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(f.BitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
