package app_test

import (
	"testing"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

func TestAttemptFeedDeliversEvents(t *testing.T) {
	feed := app.NewAttemptFeed()
	ch, cancel := feed.Subscribe()
	defer cancel()

	feed.Publish(domain.AttemptEvent{AttemptID: "a1", Score: 3, TotalQuestions: 4})

	ev := <-ch
	if ev.AttemptID != "a1" || ev.Score != 3 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestAttemptFeedCancelStopsDelivery(t *testing.T) {
	feed := app.NewAttemptFeed()
	ch, cancel := feed.Subscribe()
	cancel()

	// Publish after cancel must not panic or block.
	feed.Publish(domain.AttemptEvent{AttemptID: "a2"})

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}
}

func TestAttemptFeedSlowSubscriberDropsOldest(t *testing.T) {
	feed := app.NewAttemptFeed()
	ch, cancel := feed.Subscribe()
	defer cancel()

	// Overflow the buffer; the publisher must never block.
	for i := 0; i < 20; i++ {
		feed.Publish(domain.AttemptEvent{Score: i})
	}

	var last domain.AttemptEvent
	for {
		select {
		case ev := <-ch:
			last = ev
			continue
		default:
		}
		break
	}
	if last.Score != 19 {
		t.Fatalf("expected the newest event to survive, got %+v", last)
	}
}
