package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nikhilbhutani/bharativoice/internal/session"
	"github.com/nikhilbhutani/bharativoice/internal/speech"
)

const maxRequestBytes = 1 << 20

type SpeechHandler struct {
	sessions *session.Registry
	log      *slog.Logger
}

func NewSpeechHandler(sessions *session.Registry, logger *slog.Logger) *SpeechHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpeechHandler{sessions: sessions, log: logger.With("component", "speech_handler")}
}

type submitRequest struct {
	Text string `json:"text"`
}

type speechResponse struct {
	speech.Snapshot
	Notifications []speech.Notification `json:"notifications"`
	Error         string                `json:"error,omitempty"`
}

// Get returns the session's current state.
func (h *SpeechHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	h.respond(w, http.StatusOK, s, "")
}

// Submit runs one synthesis request for the session.
func (h *SpeechHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)

	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The call runs to completion even if the client goes away.
	ctx := context.WithoutCancel(r.Context())
	_, err := s.Controller.Submit(ctx, req.Text)

	switch {
	case err == nil:
		h.persist(ctx, s)
		h.respond(w, http.StatusOK, s, "")
	case errors.Is(err, speech.ErrEmptyInput):
		h.respond(w, http.StatusUnprocessableEntity, s, "input_required")
	case errors.Is(err, speech.ErrBusy):
		h.respond(w, http.StatusConflict, s, "busy")
	default:
		h.persist(ctx, s)
		h.respond(w, http.StatusBadGateway, s, "synthesis_failed")
	}
}

// Download streams the last result as an attachment.
func (h *SpeechHandler) Download(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	saver := &attachmentSaver{w: w}
	err := s.Controller.Download(r.Context(), saver)
	switch {
	case err == nil:
	case errors.Is(err, speech.ErrNoResult):
		writeError(w, http.StatusNotFound, "no audio generated yet")
	default:
		h.log.Error("download failed", "session_id", s.ID, "error", err)
		if !saver.written {
			writeError(w, http.StatusInternalServerError, "download failed")
		}
	}
}

func (h *SpeechHandler) session(r *http.Request) *session.Session {
	return h.sessions.Get(r.Context(), session.IDFromContext(r.Context()))
}

func (h *SpeechHandler) persist(ctx context.Context, s *session.Session) {
	if err := h.sessions.Persist(ctx, s); err != nil {
		h.log.Warn("failed to persist session result", "session_id", s.ID, "error", err)
	}
}

func (h *SpeechHandler) respond(w http.ResponseWriter, status int, s *session.Session, code string) {
	writeJSON(w, status, speechResponse{
		Snapshot:      s.Controller.Snapshot(),
		Notifications: s.Inbox.Drain(),
		Error:         code,
	})
}

// attachmentSaver writes the decoded media straight to the response.
type attachmentSaver struct {
	w       http.ResponseWriter
	written bool
}

func (a *attachmentSaver) Save(_ context.Context, fileName, media string) error {
	contentType, data, err := speech.DecodeMedia(media)
	if err != nil {
		return err
	}
	h := a.w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	a.w.WriteHeader(http.StatusOK)
	a.written = true
	_, err = a.w.Write(data)
	return err
}
