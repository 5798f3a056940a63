package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/unabs/pkg/domain"
)

// AdvanceEvent is pushed to subscribers of a session after every advance.
type AdvanceEvent struct {
	Status domain.SessionStatus `json:"status"`
	Steps  uint64               `json:"steps"`
	Output string               `json:"output,omitempty"`
	Result string               `json:"result,omitempty"`
}

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- AdvanceEvent]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- AdvanceEvent]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for the session's events. The returned
// function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan AdvanceEvent, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan AdvanceEvent, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- AdvanceEvent]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

// Broadcast delivers ev to every subscriber of the session without blocking.
func (sm *StreamManager) Broadcast(sessionID string, ev AdvanceEvent) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- ev:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// SubscribeSessionEvents handles the GET /sessions/{id}/events request (SSE).
// The stream ends when the client disconnects or the session halts.
// Unknown sessions are rejected before the stream opens.
func (s *Server) SubscribeSessionEvents(w http.ResponseWriter, r *http.Request, id SessionID) {
	if _, ok := s.loadSession(w, r, id); !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	s.logger.Info("SSE: Subscribing to session updates", "session_id", id)
	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE client disconnected", "session_id", id)
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.logger.Error("SSE: encode failed", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: advance\ndata: %s\n\n", data)
			flusher.Flush()
			if ev.Status == domain.StatusHalted || ev.Status == domain.StatusFailed {
				return
			}
		}
	}
}
