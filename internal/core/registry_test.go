package core

import "testing"

func TestRegistryLastWriterWins(t *testing.T) {
	reg := NewRegistry()

	first := NewClient("alice", "conn-1")
	second := NewClient("alice", "conn-2")

	reg.Register(first)
	reg.Register(second)

	got, ok := reg.Lookup("alice")
	if !ok || got != second {
		t.Fatalf("expected lookup to resolve to the most recent handle")
	}
	if len(reg.Users()) != 1 {
		t.Fatalf("expected a single entry per user, got %v", reg.Users())
	}
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewClient("alice", "conn-1"))

	reg.Unregister("alice")
	if _, ok := reg.Lookup("alice"); ok {
		t.Fatalf("expected entry to be absent after unregister")
	}

	// Second unregister is a no-op, not an error.
	reg.Unregister("alice")
	reg.Unregister("never-registered")
}

func TestRegistryUnregisterClientGuardsSuccessor(t *testing.T) {
	reg := NewRegistry()

	first := NewClient("alice", "conn-1")
	second := NewClient("alice", "conn-2")

	reg.Register(first)
	reg.Register(second)

	// The replaced session must not evict the reconnected one.
	if reg.UnregisterClient(first) {
		t.Fatalf("expected stale handle removal to be rejected")
	}
	if got, ok := reg.Lookup("alice"); !ok || got != second {
		t.Fatalf("expected successor to survive stale cleanup")
	}

	if !reg.UnregisterClient(second) {
		t.Fatalf("expected current handle removal to succeed")
	}
	if reg.Online("alice") {
		t.Fatalf("expected alice to be offline")
	}
}

func TestRegistrySnapshotIsACopy(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewClient("alice", "conn-1"))
	reg.Register(NewClient("bob", "conn-2"))

	snap := reg.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 handles, got %d", len(snap))
	}

	reg.Unregister("alice")
	if len(snap) != 2 {
		t.Fatalf("snapshot must not observe later mutation")
	}
	if len(reg.Snapshot()) != 1 {
		t.Fatalf("expected 1 handle after unregister")
	}
}
