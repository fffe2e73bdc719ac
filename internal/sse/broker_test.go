package sse

import (
	"strings"
	"testing"
	"time"
)

func recvTimeout(t *testing.T, ch chan []byte) string {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ""
	}
}

func TestPublishPostEvent(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishPostEvent("created", "hello-world")

	msg := recvTimeout(t, ch)
	if !strings.Contains(msg, "event: post.created") {
		t.Errorf("msg = %q, want post.created", msg)
	}
	if !strings.Contains(msg, `"slug":"hello-world"`) {
		t.Errorf("msg = %q, want slug payload", msg)
	}
}

func TestStatsThrottle(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishPostEvent("created", "a")
	b.PublishPostEvent("updated", "a")

	var events []string
	for range 3 {
		events = append(events, recvTimeout(t, ch))
	}
	stats := 0
	for _, e := range events {
		if strings.Contains(e, "event: stats.updated") {
			stats++
		}
	}
	if stats != 1 {
		t.Errorf("stats.updated events = %d, want 1 within throttle window", stats)
	}
}

func TestClientCount(t *testing.T) {
	b := NewBroker(0)
	defer b.Close()

	if n := b.ClientCount(); n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}
	ch := b.Subscribe()
	if n := b.ClientCount(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	b.Unsubscribe(ch)
	if n := b.ClientCount(); n != 0 {
		t.Errorf("count = %d after unsubscribe, want 0", n)
	}
}

func TestCloseIdempotentAndSafe(t *testing.T) {
	b := NewBroker(0)
	ch := b.Subscribe()
	b.Close()
	b.Close()

	if _, ok := <-ch; ok {
		t.Error("client channel not closed on broker shutdown")
	}
	// Publishing after close must not panic or block.
	b.PublishPostEvent("deleted", "x")
	if n := b.ClientCount(); n != 0 {
		t.Errorf("count = %d after close, want 0", n)
	}
}
