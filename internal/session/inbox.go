package session

import (
	"sync"

	"github.com/nikhilbhutani/bharativoice/internal/speech"
)

// Inbox queues notifications until the next response for the session.
type Inbox struct {
	mu    sync.Mutex
	items []speech.Notification
}

func (i *Inbox) Notify(n speech.Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, n)
}

// Drain returns the queued notifications and empties the queue.
func (i *Inbox) Drain() []speech.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.items
	i.items = nil
	if out == nil {
		out = []speech.Notification{}
	}
	return out
}
