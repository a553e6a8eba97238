package speech

import "fmt"

// PlaybackState is the observed state of the audio handle.
type PlaybackState int

const (
	Stopped PlaybackState = iota
	Playing
)

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	default:
		return "stopped"
	}
}

// Event is a lifecycle event raised by the audio handle.
type Event string

const (
	EventPlay  Event = "play"
	EventPause Event = "pause"
	EventEnded Event = "ended"
)

// ParseEvent validates an event name received from the page.
func ParseEvent(s string) (Event, error) {
	switch e := Event(s); e {
	case EventPlay, EventPause, EventEnded:
		return e, nil
	default:
		return "", fmt.Errorf("speech: unknown playback event %q", s)
	}
}

// Command is a request sent to the audio handle.
type Command string

const (
	CommandNone  Command = ""
	CommandPlay  Command = "play"
	CommandPause Command = "pause"
)

// playback tracks the observed state and the one command that may be
// outstanding against it.
type playback struct {
	state   PlaybackState
	pending Command
}

func (p *playback) reset() {
	p.state = Stopped
	p.pending = CommandNone
}

// observe applies an event and reports whether the state changed.
func (p *playback) observe(e Event) bool {
	p.pending = CommandNone
	prev := p.state
	switch e {
	case EventPlay:
		p.state = Playing
	case EventPause, EventEnded:
		p.state = Stopped
	}
	return prev != p.state
}

// next picks the command a toggle should issue.
func (p *playback) next() Command {
	if p.state == Playing {
		return CommandPause
	}
	return CommandPlay
}
