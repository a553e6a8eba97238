// Package speech holds the speech request controller: it validates text,
// drives a single outstanding synthesis call and mirrors the playback state
// reported by the audio element that renders the result.
package speech

import (
	"context"
	"errors"
	"time"
)

// DownloadFileName is the fixed name under which results are saved.
const DownloadFileName = "bharati-voice.wav"

var (
	ErrEmptyInput = errors.New("speech: input text is empty")
	ErrBusy       = errors.New("speech: a synthesis request is already in flight")
	ErrSynthesis  = errors.New("speech: synthesis failed")
	ErrNoResult   = errors.New("speech: no audio result")
	ErrNoPlayer   = errors.New("speech: no audio handle attached")
)

// Result is a successful synthesis. It is replaced wholesale, never updated.
type Result struct {
	ID          string    `json:"id"`
	Media       string    `json:"media"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Synthesizer is the external text-to-speech capability.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Result, error)
}

// Player is the audio-rendering handle. Commands issued through it are only
// requests: the playback state changes when the handle reports an event.
type Player interface {
	Play(ctx context.Context, resultID string) error
	Pause(resultID string) error
}

// Saver persists a media reference under a file name.
type Saver interface {
	Save(ctx context.Context, fileName, media string) error
}

// Notifier surfaces transient user-visible messages.
type Notifier interface {
	Notify(n Notification)
}

// Notification is a toast shown to the user.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

var (
	InputRequiredNotice = Notification{
		Title:       "Input required",
		Description: "Please enter some text to generate speech.",
		Variant:     "destructive",
	}
	SynthesisFailedNotice = Notification{
		Title:       "An error occurred",
		Description: "Failed to generate audio. Please try again.",
		Variant:     "destructive",
	}
)

// Snapshot is a consistent read of the controller state.
type Snapshot struct {
	Loading bool    `json:"loading"`
	Playing bool    `json:"playing"`
	Result  *Result `json:"result,omitempty"`
}
