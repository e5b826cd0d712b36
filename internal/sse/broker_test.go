package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe("alice")
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe("alice")
	defer b.Unsubscribe(ch)

	b.Publish("alice", Event{Type: "list.updated", Data: map[string]string{"recipe": "Soup"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: list.updated") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"recipe":"Soup"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishIsolatedPerUser(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	alice := b.Subscribe("alice")
	defer b.Unsubscribe(alice)
	bob := b.Subscribe("bob")
	defer b.Unsubscribe(bob)

	b.Publish("alice", Event{Type: "list.updated", Data: map[string]string{}})

	select {
	case <-alice:
	case <-time.After(time.Second):
		t.Fatal("alice did not receive her event")
	}

	select {
	case msg := <-bob:
		t.Errorf("bob received alice's event: %q", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestServeStreamsEvents(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.Serve(w, req, "alice")
		close(done)
	}()

	// Give the handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.Publish("alice", Event{Type: "list.cleared", Data: map[string]string{}})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: list.cleared") {
		t.Errorf("handler output missing event: %q", body)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe("alice")
	defer b.Unsubscribe(ch)

	// Fill the buffer (capacity 64) and then some; must not block.
	for i := 0; i < 70; i++ {
		b.Publish("alice", Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("alice")
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Safe no-ops after close.
	b.Publish("alice", Event{Type: "list.updated", Data: map[string]string{}})
	b.Unsubscribe(ch)
}
