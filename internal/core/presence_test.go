package core

import "testing"

func TestAnnounceReachesEveryRegisteredClient(t *testing.T) {
	reg := NewRegistry()
	notifier := NewNotifier(reg, testLogger())

	alice := NewClient("alice", "conn-a")
	bob := NewClient("bob", "conn-b")
	reg.Register(alice)
	reg.Register(bob)

	notifier.Announce("alice", true)

	for _, c := range []*Client{alice, bob} {
		ev := mustEvent(t, c.Events(), EventPresence)
		if ev.Presence.User != "alice" || !ev.Presence.Online {
			t.Fatalf("unexpected presence event for %s: %+v", c.UserID, ev.Presence)
		}
	}
}

func TestAnnounceSuppressesFailingSends(t *testing.T) {
	reg := NewRegistry()
	notifier := NewNotifier(reg, testLogger())

	broken := NewClient("broken", "conn-x")
	broken.Close() // sends will fail
	healthy := NewClient("healthy", "conn-y")
	reg.Register(broken)
	reg.Register(healthy)

	notifier.Announce("someone", false)

	ev := mustEvent(t, healthy.Events(), EventPresence)
	if ev.Presence.User != "someone" || ev.Presence.Online {
		t.Fatalf("unexpected presence event: %+v", ev.Presence)
	}

	// The failing entry is not pruned; it stays until its own session fails.
	if !reg.Online("broken") {
		t.Fatalf("expected broken client to keep its registry entry")
	}
}

func TestAnnounceDropsOnFullBuffer(t *testing.T) {
	reg := NewRegistry()
	notifier := NewNotifier(reg, testLogger())

	slow := NewClient("slow", "conn-s")
	reg.Register(slow)

	// Fill the event buffer; further announces must not block.
	for i := 0; i < cap(slow.events); i++ {
		if err := slow.Send(&Event{Kind: EventPresence}); err != nil {
			t.Fatalf("unexpected send failure while filling buffer: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		notifier.Announce("slow", true)
		close(done)
	}()

	select {
	case <-done:
	case <-timeoutC(t):
		t.Fatalf("announce blocked on a slow consumer")
	}
}
