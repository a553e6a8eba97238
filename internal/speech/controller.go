package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Controller owns the transient state of one editing session: the loading
// flag, the last result and the mirrored playback flag.
//
// The mutex is never held across the synthesis call; the loading flag is the
// admission guard that keeps a second call from starting.
type Controller struct {
	synth  Synthesizer
	notify Notifier
	log    *slog.Logger

	mu       sync.Mutex
	loading  bool
	result   *Result
	playback playback
	player   Player
}

// NewController returns a controller that calls synth and reports to notifier.
func NewController(synth Synthesizer, notifier Notifier, logger *slog.Logger) *Controller {
	if synth == nil {
		panic("speech: synthesizer must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &Controller{
		synth:  synth,
		notify: notifier,
		log:    logger.With("component", "speech"),
	}
}

// Submit validates text and runs one synthesis call to completion.
func (c *Controller) Submit(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		c.notify.Notify(InputRequiredNotice)
		return nil, ErrEmptyInput
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.loading = true
	c.result = nil
	c.playback.reset()
	c.mu.Unlock()

	start := time.Now()
	res, err := c.synth.Synthesize(ctx, text)
	if err == nil && (res == nil || res.Media == "") {
		err = errors.New("empty media reference")
	}

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		c.log.Error("error generating speech",
			"error", err,
			"text_length", len(text),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		c.notify.Notify(SynthesisFailedNotice)
		return nil, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	c.result = res
	c.playback.reset()
	c.mu.Unlock()

	c.log.Info("speech generated",
		"result_id", res.ID,
		"content_type", res.ContentType,
		"text_length", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// TogglePlayback asks the audio handle to pause when playing and to play
// otherwise. The playback flag is left alone; it follows observed events.
// While a command is outstanding no further command is issued.
func (c *Controller) TogglePlayback(ctx context.Context) error {
	c.mu.Lock()
	if c.result == nil {
		c.mu.Unlock()
		return ErrNoResult
	}
	if c.player == nil {
		c.mu.Unlock()
		return ErrNoPlayer
	}
	if c.playback.pending != CommandNone {
		pending := c.playback.pending
		c.mu.Unlock()
		c.log.Debug("playback command outstanding, toggle ignored", "pending", string(pending))
		return nil
	}
	cmd := c.playback.next()
	c.playback.pending = cmd
	player, id := c.player, c.result.ID
	c.mu.Unlock()

	if cmd == CommandPause {
		if err := player.Pause(id); err != nil {
			c.log.Warn("audio pause failed", "result_id", id, "error", err)
			c.clearPending(id)
		}
		return nil
	}
	if err := player.Play(ctx, id); err != nil {
		c.log.Warn("audio play failed", "result_id", id, "error", err)
		c.clearPending(id)
	}
	return nil
}

// ReportPlayFailure records a play request the audio handle rejected after
// the fact. It is logged only.
func (c *Controller) ReportPlayFailure(resultID string, err error) {
	c.log.Warn("audio play failed", "result_id", resultID, "error", err)
	c.clearPending(resultID)
}

// Observe applies a playback event raised for resultID. Events for any other
// result are stale and ignored. It reports whether the flag changed.
func (c *Controller) Observe(resultID string, e Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil || c.result.ID != resultID {
		return false
	}
	return c.playback.observe(e)
}

// Download hands the stored media to saver under DownloadFileName.
func (c *Controller) Download(ctx context.Context, saver Saver) error {
	c.mu.Lock()
	res := c.result
	c.mu.Unlock()
	if res == nil {
		return ErrNoResult
	}
	if err := saver.Save(ctx, DownloadFileName, res.Media); err != nil {
		return fmt.Errorf("speech: save %s: %w", DownloadFileName, err)
	}
	return nil
}

// AttachPlayer installs the audio handle for the current result. Any
// command sent to a previous handle is forgotten; the flag is left for the
// new handle's own events to correct.
func (c *Controller) AttachPlayer(p Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.player = p
	c.playback.pending = CommandNone
}

// DetachPlayer removes p if it is still the attached handle.
func (c *Controller) DetachPlayer(p Player) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.player != p {
		return
	}
	c.player = nil
	c.playback.pending = CommandNone
}

// HasPlayer reports whether an audio handle is attached.
func (c *Controller) HasPlayer() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player != nil
}

// Restore installs a result recovered from elsewhere. It is a no-op while a
// request is in flight.
func (c *Controller) Restore(res *Result) {
	if res == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return
	}
	c.result = res
	c.playback.reset()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Loading: c.loading,
		Playing: c.playback.state == Playing,
		Result:  c.result,
	}
}

func (c *Controller) clearPending(resultID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result != nil && c.result.ID == resultID {
		c.playback.pending = CommandNone
	}
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
