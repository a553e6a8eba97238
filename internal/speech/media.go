package speech

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeMedia builds a base64 data URI that an audio element can play directly.
func EncodeMedia(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeMedia splits a base64 data URI back into content type and bytes.
func DecodeMedia(ref string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return "", nil, fmt.Errorf("speech: media is not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("speech: malformed data URI")
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("speech: data URI is not base64 encoded")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("speech: decode media: %w", err)
	}
	return contentType, data, nil
}
