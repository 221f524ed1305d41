package app

import (
	"sync"

	"quizhub/internal/domain"
)

// AttemptFeed fans out attempt events to live dashboard subscribers.
// Delivery is best-effort and process-local; the attempts table remains
// the source of truth.
type AttemptFeed struct {
	mu          sync.Mutex
	subscribers map[chan domain.AttemptEvent]struct{}
}

func NewAttemptFeed() *AttemptFeed {
	return &AttemptFeed{
		subscribers: make(map[chan domain.AttemptEvent]struct{}),
	}
}

// Subscribe returns a channel of attempt events. The caller must invoke
// the returned cancel function to avoid leaks.
func (f *AttemptFeed) Subscribe() (<-chan domain.AttemptEvent, func()) {
	ch := make(chan domain.AttemptEvent, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber. A slow subscriber
// loses its oldest pending event instead of blocking the publisher.
func (f *AttemptFeed) Publish(ev domain.AttemptEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
