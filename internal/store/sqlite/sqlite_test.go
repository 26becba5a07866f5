package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/antonkazakov/dmline-server/internal/store"
)

func newDM(from, to, content string) *store.Message {
	return &store.Message{FromUser: from, ToUser: to, Content: content}
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == 0 || created.Username != "alice" {
		t.Fatalf("unexpected user: %+v", created)
	}

	got, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if got.ID != created.ID || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}

	// Duplicate usernames violate the unique constraint.
	if _, err := s.CreateUser(ctx, "alice", "other"); err == nil {
		t.Fatalf("expected duplicate username to fail")
	}
}

func TestUserExists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	exists, err := s.UserExists(ctx, "ghost")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if exists {
		t.Fatalf("expected ghost to not exist")
	}

	if _, err := s.CreateUser(ctx, "alice", "hash"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	exists, err = s.UserExists(ctx, "alice")
	if err != nil {
		t.Fatalf("UserExists failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected alice to exist")
	}
}

func TestListUsersExcludesCaller(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, u := range []string{"charlie", "alice", "bob"} {
		if _, err := s.CreateUser(ctx, u, "hash"); err != nil {
			t.Fatalf("CreateUser %s failed: %v", u, err)
		}
	}

	users, err := s.ListUsers(ctx, "bob")
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	var names []string
	for _, u := range users {
		names = append(names, u.Username)
	}
	want := []string{"alice", "charlie"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestSaveMessageAssignsTimestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, u := range []string{"alice", "bob"} {
		if _, err := s.CreateUser(ctx, u, "hash"); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	var prev time.Time
	for i := 0; i < 3; i++ {
		msg := newDM("alice", "bob", "hello")
		if err := s.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
		if msg.ID == 0 || msg.CreatedAt.IsZero() {
			t.Fatalf("expected assigned id and timestamp, got %+v", msg)
		}
		if msg.CreatedAt.Before(prev) {
			t.Fatalf("timestamps must be non-decreasing in insertion order")
		}
		prev = msg.CreatedAt
	}
}

func TestListConversationBothDirections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, u := range []string{"alice", "bob", "carol"} {
		if _, err := s.CreateUser(ctx, u, "hash"); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	seed := []struct{ from, to, content string }{
		{"alice", "bob", "one"},
		{"bob", "alice", "two"},
		{"alice", "carol", "not in this conversation"},
		{"alice", "bob", "three"},
	}
	for _, m := range seed {
		if err := s.SaveMessage(ctx, newDM(m.from, m.to, m.content)); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	msgs, err := s.ListConversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("ListConversation failed: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"one", "two", "three"} {
		if msgs[i].Content != want {
			t.Fatalf("expected %q at index %d, got %q", want, i, msgs[i].Content)
		}
	}

	// Order of the user pair must not matter.
	flipped, err := s.ListConversation(ctx, "bob", "alice")
	if err != nil {
		t.Fatalf("ListConversation failed: %v", err)
	}
	if len(flipped) != 3 {
		t.Fatalf("expected 3 messages with flipped pair, got %d", len(flipped))
	}
}

func TestMessageAttachmentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, u := range []string{"alice", "bob"} {
		if _, err := s.CreateUser(ctx, u, "hash"); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	msg := newDM("alice", "bob", "see attachment")
	msg.FileData = "aGVsbG8="
	msg.FileName = "hello.txt"
	msg.FileType = "text/plain"
	if err := s.SaveMessage(ctx, msg); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}

	msgs, err := s.ListConversation(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("ListConversation failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	got := msgs[0]
	if got.FileData != "aGVsbG8=" || got.FileName != "hello.txt" || got.FileType != "text/plain" {
		t.Fatalf("unexpected attachment fields: %+v", got)
	}
}
