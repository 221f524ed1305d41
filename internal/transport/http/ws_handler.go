package http

import (
	"log"
	"net/http"

	"quizhub/internal/domain"
)

// liveAttempts streams attempt events to admin dashboards over a
// websocket. The stream is one-way; inbound reads only detect the
// client closing.
func (h *Handler) liveAttempts(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.feed.Subscribe()
	defer cancel()

	// Tell the client the subscription is live before any events flow.
	if err := conn.WriteJSON(map[string]string{"type": "ready"}); err != nil {
		log.Printf("ws write error: %v", err)
		return
	}

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundEvent{Type: "attempt", Payload: ev}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-readerDone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

type outboundEvent struct {
	Type    string              `json:"type"`
	Payload domain.AttemptEvent `json:"payload"`
}
