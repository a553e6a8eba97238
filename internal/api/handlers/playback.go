package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nikhilbhutani/bharativoice/internal/session"
	"github.com/nikhilbhutani/bharativoice/internal/speech"
)

const (
	wsWriteWait    = 10 * time.Second
	wsMaxMessage   = 4096
	msgToggle      = "toggle"
	msgEvent       = "event"
	msgPlayFailed  = "play_failed"
	msgCommand     = "command"
	msgState       = "state"
	msgClientError = "error"
)

// clientMessage is sent by the page.
type clientMessage struct {
	Type     string `json:"type"`
	Event    string `json:"event,omitempty"`
	ResultID string `json:"result_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// serverMessage is sent to the page.
type serverMessage struct {
	Type     string `json:"type"`
	Command  string `json:"command,omitempty"`
	ResultID string `json:"result_id,omitempty"`
	Loading  bool   `json:"loading"`
	Playing  bool   `json:"playing"`
	Error    string `json:"error,omitempty"`
}

// PlaybackHandler bridges the page's audio element to the session
// controller: commands go out over the socket, element events come back.
type PlaybackHandler struct {
	sessions *session.Registry
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewPlaybackHandler(sessions *session.Registry, allowedOrigins []string, logger *slog.Logger) *PlaybackHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		log: logger.With("component", "playback"),
	}
}

func (h *PlaybackHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := session.IDFromContext(r.Context())
	s := h.sessions.Get(r.Context(), id)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "session_id", s.ID, "error", err)
		return
	}
	defer conn.Close()

	// The server's read timeout would otherwise cut idle sockets.
	conn.SetReadDeadline(time.Time{})
	conn.SetReadLimit(wsMaxMessage)

	p := &wsPlayer{conn: conn}
	s.Controller.AttachPlayer(p)
	defer func() { s.Controller.DetachPlayer(p) }()

	ctx := r.Context()
	h.sendState(p, s)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket closed", "session_id", s.ID, "error", err)
			}
			return
		}
		s = h.rebind(ctx, id, s, p)
		if err := h.handle(ctx, p, s, msg); err != nil {
			if sendErr := p.send(serverMessage{Type: msgClientError, Error: err.Error()}); sendErr != nil {
				return
			}
		}
	}
}

// rebind refreshes the session's idle clock and moves the handle over when
// the registry has replaced the session the socket was opened on.
func (h *PlaybackHandler) rebind(ctx context.Context, id string, cur *session.Session, p *wsPlayer) *session.Session {
	next := h.sessions.Get(ctx, id)
	if next == cur {
		return cur
	}
	cur.Controller.DetachPlayer(p)
	next.Controller.AttachPlayer(p)
	h.log.Debug("playback socket rebound to new session", "session_id", id)
	return next
}

func (h *PlaybackHandler) handle(ctx context.Context, p *wsPlayer, s *session.Session, msg clientMessage) error {
	switch msg.Type {
	case msgToggle:
		return s.Controller.TogglePlayback(ctx)
	case msgEvent:
		ev, err := speech.ParseEvent(msg.Event)
		if err != nil {
			return err
		}
		s.Controller.Observe(msg.ResultID, ev)
		return h.sendState(p, s)
	case msgPlayFailed:
		reason := msg.Error
		if reason == "" {
			reason = "play rejected"
		}
		s.Controller.ReportPlayFailure(msg.ResultID, errors.New(reason))
		return nil
	default:
		return errors.New("unknown message type " + msg.Type)
	}
}

func (h *PlaybackHandler) sendState(p *wsPlayer, s *session.Session) error {
	snap := s.Controller.Snapshot()
	m := serverMessage{Type: msgState, Loading: snap.Loading, Playing: snap.Playing}
	if snap.Result != nil {
		m.ResultID = snap.Result.ID
	}
	return p.send(m)
}

// wsPlayer is the audio handle on the far side of a websocket.
type wsPlayer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *wsPlayer) Play(_ context.Context, resultID string) error {
	return p.send(serverMessage{Type: msgCommand, Command: string(speech.CommandPlay), ResultID: resultID})
}

func (p *wsPlayer) Pause(resultID string) error {
	return p.send(serverMessage{Type: msgCommand, Command: string(speech.CommandPause), ResultID: resultID})
}

func (p *wsPlayer) send(m serverMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return p.conn.WriteJSON(m)
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		if set["*"] {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" || set[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}
