package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// sessionCounter reports how many sessions are live.
type sessionCounter interface {
	Len() int
}

type HealthHandler struct {
	redis    *redis.Client
	sessions sessionCounter
}

// NewHealthHandler returns the probes. rdb is nil when results are kept in
// memory.
func NewHealthHandler(rdb *redis.Client, sessions sessionCounter) *HealthHandler {
	return &HealthHandler{redis: rdb, sessions: sessions}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports unhealthy when the configured result store is unreachable.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	store := "memory"
	if h.redis != nil {
		store = "ok"
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			store = "unhealthy: " + err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	body := map[string]interface{}{
		"status": statusStr(status),
		"checks": map[string]string{"result_store": store},
	}
	if h.sessions != nil {
		body["sessions"] = h.sessions.Len()
	}
	writeJSON(w, status, body)
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
